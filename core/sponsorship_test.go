package core

import (
	"testing"

	"github.com/icon-project/contactbook/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transferCall struct {
	medium, from, to common.Address
	amount           common.HexInt
}

type mockTransfer struct {
	err   error
	calls []transferCall
}

func (m *mockTransfer) Transfer(medium, from, to common.Address, amount *common.HexInt) error {
	m.calls = append(m.calls, transferCall{medium: medium, from: from, to: to, amount: *amount.Clone()})
	return m.err
}

func initMockBook(t *testing.T, transfer *mockTransfer) *ContactBook {
	ctx, _ := initTest(transfer)
	book := NewContactBook(ctx)
	require.NoError(t, book.Initialize(testMedium))
	return book
}

func TestSponsorship_Sponsor(t *testing.T) {
	book, _ := initBook(t)
	defer finalizeTest(book.ctx)
	ledger := book.ctx.Transfer.(*Ledger)

	book.store.add(testOwner, "Mom", addrX)

	ok, err := book.sponsorship.sponsor(testOwner, "Mom")
	assert.NoError(t, err)
	assert.True(t, ok)

	sponsored, err := book.IsSponsored(testOwner, "Mom")
	assert.NoError(t, err)
	assert.True(t, sponsored)

	balance, _ := ledger.Balance(testMedium, addrX)
	assert.Equal(t, 0, balance.Cmp(&SponsorshipAmountHexInt().Int))
	balance, _ = ledger.Balance(testMedium, testOwner)
	assert.Equal(t, 0, balance.Cmp(&common.NewHexInt(9*SponsorshipAmount).Int))

	// frozen
	ok, err = book.store.edit(testOwner, "Mom", addrY)
	assert.False(t, ok)
	assert.Equal(t, ErrSponsoredLocked, errors.Cause(err))
	ok, err = book.store.delete(testOwner, "Mom")
	assert.False(t, ok)
	assert.Equal(t, ErrSponsoredLocked, errors.Cause(err))
	contact, _ := book.Get(testOwner, "Mom")
	assert.True(t, addrX.Equal(contact.Address))

	// never paid twice
	ok, err = book.sponsorship.sponsor(testOwner, "Mom")
	assert.False(t, ok)
	assert.Equal(t, ErrAlreadySponsored, errors.Cause(err))
	balance, _ = ledger.Balance(testMedium, addrX)
	assert.Equal(t, 0, balance.Cmp(&SponsorshipAmountHexInt().Int))

	// sponsorship of one owner does not touch another
	sponsored, _ = book.IsSponsored(testOther, "Mom")
	assert.False(t, sponsored)

	stats, _ := book.Statistics()
	assert.Equal(t, uint64(1), stats.Sponsored)
	assert.Equal(t, 0, stats.SponsoredAmount.Cmp(&SponsorshipAmountHexInt().Int))

	list, _ := book.ListSponsored(testOwner)
	assert.Equal(t, []string{"Mom"}, list)
}

func TestSponsorship_Absent(t *testing.T) {
	transfer := new(mockTransfer)
	book := initMockBook(t, transfer)
	defer finalizeTest(book.ctx)

	ok, err := book.sponsorship.sponsor(testOwner, "Ghost")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, len(transfer.calls))

	ok, err = book.sponsorship.sponsor(testOwner, "")
	assert.False(t, ok)
	assert.Equal(t, ErrInvalidAlias, errors.Cause(err))
	assert.Equal(t, 0, len(transfer.calls))
}

func TestSponsorship_TransferArguments(t *testing.T) {
	transfer := new(mockTransfer)
	book := initMockBook(t, transfer)
	defer finalizeTest(book.ctx)

	book.store.add(testOwner, "Mom", addrX)
	ok, err := book.sponsorship.sponsor(testOwner, "Mom")
	assert.NoError(t, err)
	assert.True(t, ok)

	require.Equal(t, 1, len(transfer.calls))
	call := transfer.calls[0]
	assert.True(t, testMedium.Equal(call.medium))
	assert.True(t, testOwner.Equal(call.from))
	assert.True(t, addrX.Equal(call.to))
	assert.Equal(t, int64(SponsorshipAmount), call.amount.Int64())
}

func TestSponsorship_TransferFailed(t *testing.T) {
	transfer := &mockTransfer{err: errors.New("medium rejected transfer")}
	book := initMockBook(t, transfer)
	defer finalizeTest(book.ctx)

	book.store.add(testOwner, "Mom", addrX)

	ok, err := book.sponsorship.sponsor(testOwner, "Mom")
	assert.False(t, ok)
	assert.Equal(t, ErrTransferFailed, errors.Cause(err))
	assert.Contains(t, err.Error(), "medium rejected transfer")

	sponsored, _ := book.IsSponsored(testOwner, "Mom")
	assert.False(t, sponsored)
	contact, _ := book.Get(testOwner, "Mom")
	assert.True(t, addrX.Equal(contact.Address))
	assert.Equal(t, uint64(testNow), contact.UpdatedAt)

	stats, _ := book.Statistics()
	assert.Equal(t, uint64(0), stats.Sponsored)

	// still editable
	ok, err = book.store.edit(testOwner, "Mom", addrY)
	assert.NoError(t, err)
	assert.True(t, ok)

	// retry after the medium recovers
	transfer.err = nil
	ok, err = book.sponsorship.sponsor(testOwner, "Mom")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, len(transfer.calls))
}

func TestSponsorship_InsufficientBalance(t *testing.T) {
	ctx, _ := initTest(nil)
	defer finalizeTest(ctx)
	book := NewContactBook(ctx)
	require.NoError(t, book.Initialize(testMedium))
	require.NoError(t, book.Mint(testOwner, common.NewHexInt(SponsorshipAmount-1)))

	book.store.add(testOwner, "Mom", addrX)
	ok, err := book.sponsorship.sponsor(testOwner, "Mom")
	assert.False(t, ok)
	assert.Equal(t, ErrTransferFailed, errors.Cause(err))

	sponsored, _ := book.IsSponsored(testOwner, "Mom")
	assert.False(t, sponsored)
	balance, _ := book.Balance(testOwner)
	assert.Equal(t, int64(SponsorshipAmount-1), balance.Int64())
}

func TestSponsorship_NotInitialized(t *testing.T) {
	transfer := new(mockTransfer)
	ctx, _ := initTest(transfer)
	defer finalizeTest(ctx)
	book := NewContactBook(ctx)

	book.store.add(testOwner, "Mom", addrX)
	ok, err := book.sponsorship.sponsor(testOwner, "Mom")
	assert.False(t, ok)
	assert.Equal(t, ErrNotInitialized, errors.Cause(err))
	assert.Equal(t, 0, len(transfer.calls))

	assert.NoError(t, book.Initialize(testMedium))
	assert.Equal(t, ErrAlreadyInitialized, errors.Cause(book.Initialize(addrY)))
}

func TestSponsorTracker_markSponsored(t *testing.T) {
	book := initMockBook(t, new(mockTransfer))
	defer finalizeTest(book.ctx)
	tracker := book.tracker

	added, err := tracker.markSponsored(testOwner, "Mom", SponsorshipAmountHexInt())
	assert.NoError(t, err)
	assert.True(t, added)

	set, _ := book.ctx.DB.readSponsored(testOwner)
	before, _ := set.Bytes()

	added, err = tracker.markSponsored(testOwner, "Mom", SponsorshipAmountHexInt())
	assert.NoError(t, err)
	assert.False(t, added)

	set, _ = book.ctx.DB.readSponsored(testOwner)
	after, _ := set.Bytes()
	assert.Equal(t, before, after)

	stats, _ := book.Statistics()
	assert.Equal(t, uint64(1), stats.Sponsored)

	tracker.markSponsored(testOwner, "Aunt", SponsorshipAmountHexInt())
	list, err := tracker.list(testOwner)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Aunt", "Mom"}, list)

	list, _ = tracker.list(testOther)
	assert.Equal(t, 0, len(list))
}
