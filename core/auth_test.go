package core

import (
	"testing"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/codec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedEnvelope(t *testing.T, kp *common.KeyPair, msg uint, nonce uint64, payload interface{}) *Envelope {
	env, err := NewEnvelope(msg, nonce, payload)
	require.NoError(t, err)
	require.NoError(t, env.Sign(kp))
	return env
}

func TestAuthenticator_Authenticate(t *testing.T) {
	ctx, _ := initTest(nil)
	defer finalizeTest(ctx)
	auth := NewAuthenticator(ctx.DB.Database())
	kp := common.GenerateKeyPair()

	env := signedEnvelope(t, kp, MsgAdd, 1, &ContactMessage{Alias: "Mom", Address: addrX})
	caller, err := auth.Authenticate(env)
	assert.NoError(t, err)
	assert.True(t, kp.Address().Equal(caller.Address()))

	nonce, err := auth.LastNonce(*kp.Address())
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)

	var req ContactMessage
	assert.NoError(t, env.Decode(&req))
	assert.Equal(t, "Mom", req.Alias)
	assert.True(t, addrX.Equal(req.Address))

	// replay
	_, err = auth.Authenticate(env)
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))

	// skipped nonce
	env = signedEnvelope(t, kp, MsgAdd, 3, &ContactMessage{Alias: "Dad", Address: addrY})
	_, err = auth.Authenticate(env)
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))

	env = signedEnvelope(t, kp, MsgAdd, 2, &ContactMessage{Alias: "Dad", Address: addrY})
	_, err = auth.Authenticate(env)
	assert.NoError(t, err)
}

func TestAuthenticator_Reject(t *testing.T) {
	ctx, _ := initTest(nil)
	defer finalizeTest(ctx)
	auth := NewAuthenticator(ctx.DB.Database())
	kp := common.GenerateKeyPair()
	other := common.GenerateKeyPair()

	// wrong sender
	env := signedEnvelope(t, kp, MsgAdd, 1, &ContactMessage{Alias: "Mom", Address: addrX})
	env.From = *other.Address()
	_, err := auth.Authenticate(env)
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))

	// tampered payload
	env = signedEnvelope(t, kp, MsgAdd, 1, &ContactMessage{Alias: "Mom", Address: addrX})
	env.Payload, _ = codec.MarshalToBytes(&ContactMessage{Alias: "Mom", Address: addrY})
	_, err = auth.Authenticate(env)
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))

	// bad signature
	env = signedEnvelope(t, kp, MsgAdd, 1, &ContactMessage{Alias: "Mom", Address: addrX})
	env.Signature = env.Signature[:10]
	_, err = auth.Authenticate(env)
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))

	_, err = auth.Authenticate(nil)
	assert.Equal(t, ErrUnauthenticated, errors.Cause(err))

	// rejected envelopes consume no nonce
	nonce, _ := auth.LastNonce(*kp.Address())
	assert.Equal(t, uint64(0), nonce)
}

func TestCaller_owner(t *testing.T) {
	var caller *Caller
	_, err := caller.owner()
	assert.Equal(t, ErrUnauthenticated, err)

	_, err = (&Caller{address: testOwner}).owner()
	assert.Equal(t, ErrUnauthenticated, err)

	owner, err := NewTrustedCaller(testOwner).owner()
	assert.NoError(t, err)
	assert.True(t, testOwner.Equal(owner))
}
