package core

import (
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/db"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDir string

var (
	testMedium = *common.NewAddressFromString("cx0000000000000000000000000000000000000001")
	testOwner  = *common.NewAddressFromString("hx1111111111111111111111111111111111111111")
	testOther  = *common.NewAddressFromString("hx2222222222222222222222222222222222222222")
	addrX      = *common.NewAddressFromString("hxaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	addrY      = *common.NewAddressFromString("hxbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	addrZ      = *common.NewAddressFromString("hxcccccccccccccccccccccccccccccccccccccccc")
)

const testNow int64 = 1600000000

func initTest(transfer Transferer) (*Context, *clock.Mock) {
	var err error
	testDir, err = ioutil.TempDir("", "contactbook")
	if err != nil {
		panic(err)
	}

	clk := clock.NewMock()
	clk.Set(time.Unix(testNow, 0))
	ctx, err := NewContext(testDir, string(db.GoLevelDBBackend), "test", clk, transfer)
	if err != nil {
		panic(err)
	}

	return ctx, clk
}

func finalizeTest(ctx *Context) {
	CloseContactDB(ctx.DB)
	os.RemoveAll(testDir)
}

// initBook returns an initialized contact book whose owners hold funds in
// the bundled ledger.
func initBook(t *testing.T) (*ContactBook, *clock.Mock) {
	ctx, clk := initTest(nil)
	book := NewContactBook(ctx)
	require.NoError(t, book.Initialize(testMedium))
	require.NoError(t, book.Mint(testOwner, common.NewHexInt(10*SponsorshipAmount)))
	require.NoError(t, book.Mint(testOther, common.NewHexInt(10*SponsorshipAmount)))
	return book, clk
}

func TestContext_NewContext(t *testing.T) {
	ctx, _ := initTest(nil)
	defer finalizeTest(ctx)
	assert.NotNil(t, ctx)

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.DB.info)
	assert.NotNil(t, ctx.Clock)
	assert.IsType(t, &Ledger{}, ctx.Transfer)
	assert.False(t, ctx.DB.getInfo().Initialized)
	assert.Equal(t, uint64(testNow), ctx.now())

	stats, err := ctx.DB.Statistics()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), stats.Contacts)
	assert.Equal(t, 0, stats.SponsoredAmount.Sign())
}

func TestContactDB_setMedium(t *testing.T) {
	ctx, _ := initTest(nil)
	defer finalizeTest(ctx)

	err := ctx.DB.setMedium(testMedium)
	assert.NoError(t, err)
	info := ctx.DB.getInfo()
	assert.True(t, info.Initialized)
	assert.True(t, testMedium.Equal(info.Medium))

	// second initialize fails and keeps the medium
	err = ctx.DB.setMedium(addrX)
	assert.Equal(t, ErrAlreadyInitialized, errors.Cause(err))
	assert.True(t, testMedium.Equal(ctx.DB.getInfo().Medium))

	// medium survives reopen
	CloseContactDB(ctx.DB)
	cdb, err := OpenContactDB(testDir, string(db.GoLevelDBBackend), "test")
	require.NoError(t, err)
	ctx.DB = cdb
	info = ctx.DB.getInfo()
	assert.True(t, info.Initialized)
	assert.True(t, testMedium.Equal(info.Medium))
}

func TestContactDB_commit(t *testing.T) {
	ctx, _ := initTest(nil)
	defer finalizeTest(ctx)

	book := newBook(testOwner)
	book.put(Contact{Alias: "Mom", Address: addrX})
	err := ctx.DB.commit(book, nil, func(stats *Statistics) error {
		return stats.Increase(StatContacts, uint64(1))
	})
	assert.NoError(t, err)

	read, err := ctx.DB.readBook(testOwner)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(read.Contacts))

	// failing statistics update writes nothing
	book.put(Contact{Alias: "Dad", Address: addrY})
	err = ctx.DB.commit(book, nil, func(stats *Statistics) error {
		return stats.Decrease(StatContacts, uint64(2))
	})
	assert.Error(t, err)
	read, _ = ctx.DB.readBook(testOwner)
	assert.Equal(t, 1, len(read.Contacts))

	// empty book is deleted
	book = newBook(testOwner)
	err = ctx.DB.commit(book, nil, nil)
	assert.NoError(t, err)
	bucket, _ := ctx.DB.Database().GetBucket(db.PrefixContactBook)
	assert.False(t, bucket.Has(testOwner.Bytes()))
}
