package core

import (
	"sync"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/db"
	"github.com/pkg/errors"
)

// Transferer moves amount of medium from one account to another. A
// transfer either completes or leaves every balance untouched.
type Transferer interface {
	Transfer(medium, from, to common.Address, amount *common.HexInt) error
}

// Ledger keeps native balances per medium in the contact DB.
type Ledger struct {
	lock sync.Mutex
	db   db.Database
}

var _ Transferer = (*Ledger)(nil)

func NewLedger(database db.Database) *Ledger {
	return &Ledger{db: database}
}

func balanceKey(medium, owner common.Address) []byte {
	key := make([]byte, 0, common.AddressBytes*2)
	key = append(key, medium.Bytes()...)
	return append(key, owner.Bytes()...)
}

func (l *Ledger) balance(medium, owner common.Address) (*common.HexInt, error) {
	bucket, _ := l.db.GetBucket(db.PrefixBalance)
	bs, err := bucket.Get(balanceKey(medium, owner))
	if err != nil {
		return nil, errors.Wrapf(err, "read balance of %s", owner)
	}
	balance := new(common.HexInt)
	balance.SetBytes(bs)
	return balance, nil
}

func (l *Ledger) Balance(medium, owner common.Address) (*common.HexInt, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.balance(medium, owner)
}

// Mint credits amount to owner. It feeds test and development setups.
func (l *Ledger) Mint(medium, to common.Address, amount *common.HexInt) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "mint %v", amount)
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	balance, err := l.balance(medium, to)
	if err != nil {
		return err
	}
	balance.Add(&balance.Int, &amount.Int)

	bucket, _ := l.db.GetBucket(db.PrefixBalance)
	return bucket.Set(balanceKey(medium, to), balance.Bytes())
}

func (l *Ledger) Transfer(medium, from, to common.Address, amount *common.HexInt) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "transfer %v", amount)
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	fromBalance, err := l.balance(medium, from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(&amount.Int) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "%s has %s, needs %s",
			from, fromBalance.String(), amount.String())
	}
	if from.Equal(to) {
		return nil
	}
	toBalance, err := l.balance(medium, to)
	if err != nil {
		return err
	}

	fromBalance.Sub(&fromBalance.Int, &amount.Int)
	toBalance.Add(&toBalance.Int, &amount.Int)

	batch, err := l.db.GetBatch()
	if err != nil {
		return err
	}
	batch.New()
	batch.Set(db.PrefixBalance, balanceKey(medium, from), fromBalance.Bytes())
	batch.Set(db.PrefixBalance, balanceKey(medium, to), toBalance.Bytes())
	return batch.Write()
}
