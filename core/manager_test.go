package core

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/db"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initManagerTest(t *testing.T, faucet bool) (*manager, *CBIPC, func()) {
	dir, err := ioutil.TempDir("", "contactbook-ipc")
	require.NoError(t, err)

	cfg := &CBConfig{
		DBDir:   filepath.Join(dir, "db"),
		DBType:  string(db.GoLevelDBBackend),
		IpcNet:  "unix",
		IpcAddr: filepath.Join(dir, "cb.sock"),
		Medium:  testMedium.String(),
		Faucet:  faucet,
	}
	m, err := InitManager(cfg)
	require.NoError(t, err)
	go m.Loop()

	client, err := InitCBIPC(cfg.IpcNet, cfg.IpcAddr)
	require.NoError(t, err)

	return m, client, func() {
		FiniCBIPC(client)
		m.Close()
		os.RemoveAll(dir)
	}
}

func TestManager_IPC(t *testing.T) {
	m, client, finalize := initManagerTest(t, true)
	defer finalize()

	kp := common.GenerateKeyPair()
	owner := *kp.Address()

	version, err := client.SendVersion()
	assert.NoError(t, err)
	assert.Equal(t, Version, version.Version)
	assert.True(t, version.Initialized)

	// initialized from configuration
	err = client.SendInit(addrY)
	assert.Equal(t, ErrAlreadyInitialized, errors.Cause(err))

	ok, err := client.SendAdd(kp, "Mom", addrX)
	assert.NoError(t, err)
	assert.True(t, ok)

	contact, err := client.SendGet(owner, "Mom")
	assert.NoError(t, err)
	assert.Equal(t, "Mom", contact.Alias)
	assert.True(t, addrX.Equal(contact.Address))
	contact, err = client.SendGet(owner, "Dad")
	assert.NoError(t, err)
	assert.Nil(t, contact)

	// false is a completed call, an abort carries the cause
	ok, err = client.SendEdit(kp, "Ghost", addrY)
	assert.NoError(t, err)
	assert.False(t, ok)
	ok, err = client.SendAdd(kp, "Dad", addrX)
	assert.False(t, ok)
	assert.Equal(t, ErrDuplicateAddress, errors.Cause(err))

	// sponsorship needs funds
	ok, err = client.SendSponsor(kp, "Mom")
	assert.False(t, ok)
	assert.Equal(t, ErrTransferFailed, errors.Cause(err))

	assert.NoError(t, client.SendMint(owner, common.NewHexInt(SponsorshipAmount)))
	ok, err = client.SendSponsor(kp, "Mom")
	assert.NoError(t, err)
	assert.True(t, ok)

	sponsored, err := client.SendIsSponsored(owner, "Mom")
	assert.NoError(t, err)
	assert.True(t, sponsored)
	aliases, err := client.SendListSponsored(owner)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Mom"}, aliases)

	ok, err = client.SendDelete(kp, "Mom")
	assert.False(t, ok)
	assert.Equal(t, ErrSponsoredLocked, errors.Cause(err))

	balance, err := client.SendBalance(addrX)
	assert.NoError(t, err)
	assert.Equal(t, int64(SponsorshipAmount), balance.Int64())
	balance, err = client.SendBalance(owner)
	assert.NoError(t, err)
	assert.Equal(t, 0, balance.Sign())

	amount, err := client.SendSponsorshipAmount()
	assert.NoError(t, err)
	assert.Equal(t, int64(SponsorshipAmount), amount.Int64())

	used, err := client.SendIsAddressUsed(owner, addrX)
	assert.NoError(t, err)
	assert.True(t, used)
	alias, err := client.SendFindAlias(owner, addrX)
	assert.NoError(t, err)
	assert.Equal(t, "Mom", alias)

	count, err := client.SendCount(owner)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), count)
	list, err := client.SendList(owner)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(list))

	nonce, err := client.SendNonce(owner)
	assert.NoError(t, err)
	assert.Equal(t, uint64(6), nonce)

	stats, err := client.SendStatistics()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Contacts)
	assert.Equal(t, uint64(1), stats.Sponsored)
	assert.Equal(t, int64(SponsorshipAmount), stats.SponsoredAmount.Int64())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.metrics.messages.WithLabelValues("SPONSOR", "true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.metrics.messages.WithLabelValues("SPONSOR", "TRANSFER_FAILED")))
	assert.Equal(t, float64(SponsorshipAmount), testutil.ToFloat64(m.metrics.sponsoredAmount))
}

func TestManager_Replay(t *testing.T) {
	_, client, finalize := initManagerTest(t, false)
	defer finalize()

	kp := common.GenerateKeyPair()
	env, err := NewEnvelope(MsgAdd, 1, &ContactMessage{Alias: "Mom", Address: addrX})
	require.NoError(t, err)
	require.NoError(t, env.Sign(kp))

	ok, err := client.SendEnvelope(MsgAdd, env)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SendEnvelope(MsgAdd, env)
	assert.False(t, ok)
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))

	// envelope signed for another message
	env, _ = NewEnvelope(MsgAdd, 2, &AliasMessage{Alias: "Mom"})
	env.Sign(kp)
	ok, err = client.SendEnvelope(MsgDelete, env)
	assert.False(t, ok)
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))

	count, _ := client.SendCount(*kp.Address())
	assert.Equal(t, uint32(1), count)

	// faucet disabled
	err = client.SendMint(*kp.Address(), common.NewHexInt(1))
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))
}
