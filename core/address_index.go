package core

import (
	"github.com/icon-project/contactbook/common"
)

// isAddressUsed reports whether an alias other than excludingAlias maps to
// address. Pass "" to exclude nothing.
func isAddressUsed(book *Book, address common.Address, excludingAlias string) bool {
	for i := range book.Contacts {
		c := &book.Contacts[i]
		if c.Alias == excludingAlias {
			continue
		}
		if c.Address.Equal(address) {
			return true
		}
	}
	return false
}

// findAliasByAddress returns the first alias, in alias order, bound to
// address or "".
func findAliasByAddress(book *Book, address common.Address) string {
	for i := range book.Contacts {
		if book.Contacts[i].Address.Equal(address) {
			return book.Contacts[i].Alias
		}
	}
	return ""
}

type addressIndex struct {
	ctx *Context
}

func (ai *addressIndex) isAddressUsed(owner, address common.Address, excludingAlias string) (bool, error) {
	book, err := ai.ctx.DB.readBook(owner)
	if err != nil {
		return false, err
	}
	return isAddressUsed(book, address, excludingAlias), nil
}

func (ai *addressIndex) findAlias(owner, address common.Address) (string, error) {
	book, err := ai.ctx.DB.readBook(owner)
	if err != nil {
		return "", err
	}
	return findAliasByAddress(book, address), nil
}
