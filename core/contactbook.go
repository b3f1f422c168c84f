package core

import (
	"sync"

	"github.com/icon-project/contactbook/common"
	"github.com/pkg/errors"
)

const (
	ownerLockCount = 64

	// the last address byte picks the owner lock
	ownerLockByte = common.AddressBytes - 1
)

// ContactBook is the callable surface of the service. Mutations need a
// verified Caller and are serialized per owner. Reads need only the owner.
type ContactBook struct {
	ctx  *Context
	auth *Authenticator

	store       *contactStore
	index       *addressIndex
	tracker     *sponsorTracker
	sponsorship *sponsorship

	ownerLocks [ownerLockCount]sync.Mutex
}

func NewContactBook(ctx *Context) *ContactBook {
	cb := &ContactBook{
		ctx:  ctx,
		auth: NewAuthenticator(ctx.DB.db),
	}
	cb.index = &addressIndex{ctx: ctx}
	cb.tracker = &sponsorTracker{ctx: ctx}
	cb.store = &contactStore{ctx: ctx, tracker: cb.tracker}
	cb.sponsorship = &sponsorship{ctx: ctx, store: cb.store, tracker: cb.tracker}
	return cb
}

func (cb *ContactBook) lockOwner(owner common.Address) func() {
	l := &cb.ownerLocks[owner[ownerLockByte]%ownerLockCount]
	l.Lock()
	return l.Unlock
}

func (cb *ContactBook) Context() *Context {
	return cb.ctx
}

// Initialize sets the transfer medium of sponsorships. It succeeds once.
func (cb *ContactBook) Initialize(medium common.Address) error {
	return cb.ctx.DB.setMedium(medium)
}

func (cb *ContactBook) Initialized() bool {
	return cb.ctx.DB.getInfo().Initialized
}

func (cb *ContactBook) Medium() common.Address {
	return cb.ctx.DB.getInfo().Medium
}

func (cb *ContactBook) Authenticate(env *Envelope) (*Caller, error) {
	return cb.auth.Authenticate(env)
}

func (cb *ContactBook) Nonce(owner common.Address) (uint64, error) {
	return cb.auth.LastNonce(owner)
}

func (cb *ContactBook) Add(caller *Caller, alias string, address common.Address) (bool, error) {
	owner, err := caller.owner()
	if err != nil {
		return false, err
	}
	defer cb.lockOwner(owner)()
	return cb.store.add(owner, alias, address)
}

func (cb *ContactBook) Edit(caller *Caller, alias string, newAddress common.Address) (bool, error) {
	owner, err := caller.owner()
	if err != nil {
		return false, err
	}
	defer cb.lockOwner(owner)()
	return cb.store.edit(owner, alias, newAddress)
}

func (cb *ContactBook) Delete(caller *Caller, alias string) (bool, error) {
	owner, err := caller.owner()
	if err != nil {
		return false, err
	}
	defer cb.lockOwner(owner)()
	return cb.store.delete(owner, alias)
}

func (cb *ContactBook) Sponsor(caller *Caller, alias string) (bool, error) {
	owner, err := caller.owner()
	if err != nil {
		return false, err
	}
	defer cb.lockOwner(owner)()
	return cb.sponsorship.sponsor(owner, alias)
}

func (cb *ContactBook) Get(owner common.Address, alias string) (*Contact, error) {
	return cb.store.get(owner, alias)
}

func (cb *ContactBook) List(owner common.Address) ([]Contact, error) {
	return cb.store.list(owner)
}

func (cb *ContactBook) Count(owner common.Address) (uint32, error) {
	return cb.store.count(owner)
}

func (cb *ContactBook) SponsorshipAmount() *common.HexInt {
	return SponsorshipAmountHexInt()
}

func (cb *ContactBook) IsSponsored(owner common.Address, alias string) (bool, error) {
	return cb.tracker.isSponsored(owner, alias)
}

func (cb *ContactBook) ListSponsored(owner common.Address) ([]string, error) {
	return cb.tracker.list(owner)
}

func (cb *ContactBook) IsAddressUsed(owner, address common.Address) (bool, error) {
	return cb.index.isAddressUsed(owner, address, "")
}

func (cb *ContactBook) FindAliasByAddress(owner, address common.Address) (string, error) {
	return cb.index.findAlias(owner, address)
}

func (cb *ContactBook) Statistics() (*Statistics, error) {
	return cb.ctx.DB.Statistics()
}

// Balance returns the balance of owner in the medium when the bundled
// ledger moves the funds.
func (cb *ContactBook) Balance(owner common.Address) (*common.HexInt, error) {
	l, ok := cb.ctx.Transfer.(*Ledger)
	if !ok {
		return nil, errors.Wrap(ErrInternal, "no bundled ledger")
	}
	return l.Balance(cb.Medium(), owner)
}

// Mint credits the bundled ledger. It is for development faucets.
func (cb *ContactBook) Mint(to common.Address, amount *common.HexInt) error {
	l, ok := cb.ctx.Transfer.(*Ledger)
	if !ok {
		return errors.Wrap(ErrInternal, "no bundled ledger")
	}
	if !cb.Initialized() {
		return ErrNotInitialized
	}
	return l.Mint(cb.Medium(), to, amount)
}
