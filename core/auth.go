package core

import (
	"sync"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/codec"
	"github.com/icon-project/contactbook/common/db"
	"github.com/pkg/errors"
)

// Caller is the authenticated account of a mutation. Only Authenticate and
// NewTrustedCaller make a verified one.
type Caller struct {
	address  common.Address
	verified bool
}

// NewTrustedCaller is for in-process callers which were authenticated by
// other means.
func NewTrustedCaller(address common.Address) *Caller {
	return &Caller{address: address, verified: true}
}

func (c *Caller) Address() common.Address {
	return c.address
}

func (c *Caller) owner() (common.Address, error) {
	if c == nil || !c.verified {
		return common.Address{}, ErrUnauthenticated
	}
	return c.address, nil
}

// Envelope carries a signed mutation request.
type Envelope struct {
	Msg       uint
	From      common.Address
	Nonce     uint64
	Payload   []byte
	Signature []byte
}

type envelopeBody struct {
	Msg     uint
	From    common.Address
	Nonce   uint64
	Payload []byte
}

func NewEnvelope(msg uint, nonce uint64, payload interface{}) (*Envelope, error) {
	bs, err := codec.MarshalToBytes(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{Msg: msg, Nonce: nonce, Payload: bs}, nil
}

func (e *Envelope) Hash() ([]byte, error) {
	body := envelopeBody{
		Msg:     e.Msg,
		From:    e.From,
		Nonce:   e.Nonce,
		Payload: e.Payload,
	}
	bs, err := codec.MarshalToBytes(&body)
	if err != nil {
		return nil, err
	}
	return common.SHA3Sum256(bs), nil
}

// Sign sets the sender to the address of kp and signs the envelope.
func (e *Envelope) Sign(kp *common.KeyPair) error {
	e.From = *kp.Address()
	hash, err := e.Hash()
	if err != nil {
		return err
	}
	sig, err := kp.Sign(hash)
	if err != nil {
		return err
	}
	e.Signature = sig
	return nil
}

func (e *Envelope) Decode(v interface{}) error {
	_, err := codec.UnmarshalFromBytes(e.Payload, v)
	return err
}

type Authenticator struct {
	lock sync.Mutex
	db   db.Database
}

func NewAuthenticator(database db.Database) *Authenticator {
	return &Authenticator{db: database}
}

func (a *Authenticator) lastNonce(address common.Address) (uint64, error) {
	bucket, _ := a.db.GetBucket(db.PrefixNonce)
	bs, err := bucket.Get(address.Bytes())
	if err != nil {
		return 0, errors.Wrapf(err, "read nonce of %s", address)
	}
	if bs == nil {
		return 0, nil
	}
	return common.BytesToUint64(bs), nil
}

// LastNonce returns the nonce of the last accepted envelope of address.
// The next envelope must carry LastNonce + 1.
func (a *Authenticator) LastNonce(address common.Address) (uint64, error) {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.lastNonce(address)
}

// Authenticate verifies the signature and the nonce of env and consumes
// the nonce.
func (a *Authenticator) Authenticate(env *Envelope) (*Caller, error) {
	if env == nil {
		return nil, errors.Wrap(ErrUnauthenticated, "no envelope")
	}
	hash, err := env.Hash()
	if err != nil {
		return nil, errors.Wrapf(ErrUnauthenticated, "hash: %v", err)
	}
	signer, err := common.RecoverAddress(hash, env.Signature)
	if err != nil {
		return nil, errors.Wrapf(ErrUnauthenticated, "%v", err)
	}
	if !signer.Equal(env.From) {
		return nil, errors.Wrapf(ErrUnauthenticated, "signer %s is not sender %s", signer, env.From)
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	last, err := a.lastNonce(env.From)
	if err != nil {
		return nil, err
	}
	if env.Nonce != last+1 {
		return nil, errors.Wrapf(ErrUnauthenticated, "nonce %d of %s, expected %d", env.Nonce, env.From, last+1)
	}
	bucket, _ := a.db.GetBucket(db.PrefixNonce)
	if err = bucket.Set(env.From.Bytes(), common.Uint64ToBytes(env.Nonce)); err != nil {
		return nil, errors.Wrapf(err, "write nonce of %s", env.From)
	}

	return &Caller{address: env.From, verified: true}, nil
}
