package core

import (
	"github.com/icon-project/contactbook/common"
	"github.com/pkg/errors"
)

func validateAlias(alias string) error {
	if len(alias) == 0 {
		return errors.Wrap(ErrInvalidAlias, "empty alias")
	}
	return nil
}

type contactStore struct {
	ctx     *Context
	tracker *sponsorTracker
}

func (s *contactStore) add(owner common.Address, alias string, address common.Address) (bool, error) {
	if err := validateAlias(alias); err != nil {
		return false, err
	}

	book, err := s.ctx.DB.readBook(owner)
	if err != nil {
		return false, err
	}
	if book.get(alias) != nil {
		return false, errors.Wrapf(ErrDuplicateAlias, "alias=%s", alias)
	}
	if isAddressUsed(book, address, alias) {
		return false, errors.Wrapf(ErrDuplicateAddress, "address=%s", address)
	}

	now := s.ctx.now()
	book.put(Contact{
		Alias:     alias,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	})

	err = s.ctx.DB.commit(book, nil, func(stats *Statistics) error {
		return stats.Increase(StatContacts, uint64(1))
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// edit returns false without error when alias is not in the book.
func (s *contactStore) edit(owner common.Address, alias string, newAddress common.Address) (bool, error) {
	if err := validateAlias(alias); err != nil {
		return false, err
	}

	sponsored, err := s.tracker.isSponsored(owner, alias)
	if err != nil {
		return false, err
	}
	if sponsored {
		return false, errors.Wrapf(ErrSponsoredLocked, "edit alias=%s", alias)
	}

	book, err := s.ctx.DB.readBook(owner)
	if err != nil {
		return false, err
	}
	if isAddressUsed(book, newAddress, alias) {
		return false, errors.Wrapf(ErrDuplicateAddress, "address=%s", newAddress)
	}

	contact := book.get(alias)
	if contact == nil {
		return false, nil
	}
	contact.Address = newAddress
	contact.UpdatedAt = s.ctx.now()

	if err = s.ctx.DB.commit(book, nil, nil); err != nil {
		return false, err
	}
	return true, nil
}

// delete returns false without error when alias is not in the book.
func (s *contactStore) delete(owner common.Address, alias string) (bool, error) {
	if err := validateAlias(alias); err != nil {
		return false, err
	}

	sponsored, err := s.tracker.isSponsored(owner, alias)
	if err != nil {
		return false, err
	}
	if sponsored {
		return false, errors.Wrapf(ErrSponsoredLocked, "delete alias=%s", alias)
	}

	book, err := s.ctx.DB.readBook(owner)
	if err != nil {
		return false, err
	}
	if !book.remove(alias) {
		return false, nil
	}

	err = s.ctx.DB.commit(book, nil, func(stats *Statistics) error {
		return stats.Decrease(StatContacts, uint64(1))
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// get returns nil when alias is not in the book.
func (s *contactStore) get(owner common.Address, alias string) (*Contact, error) {
	book, err := s.ctx.DB.readBook(owner)
	if err != nil {
		return nil, err
	}
	if c := book.get(alias); c != nil {
		contact := *c
		return &contact, nil
	}
	return nil, nil
}

func (s *contactStore) list(owner common.Address) ([]Contact, error) {
	book, err := s.ctx.DB.readBook(owner)
	if err != nil {
		return nil, err
	}
	return book.list(), nil
}

func (s *contactStore) count(owner common.Address) (uint32, error) {
	book, err := s.ctx.DB.readBook(owner)
	if err != nil {
		return 0, err
	}
	return uint32(len(book.Contacts)), nil
}
