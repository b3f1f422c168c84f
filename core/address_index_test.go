package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressIndex_isAddressUsed(t *testing.T) {
	book := newBook(testOwner)
	book.put(Contact{Alias: "Mom", Address: addrX})
	book.put(Contact{Alias: "Dad", Address: addrY})

	assert.True(t, isAddressUsed(book, addrX, ""))
	assert.True(t, isAddressUsed(book, addrX, "Dad"))
	assert.False(t, isAddressUsed(book, addrX, "Mom"))
	assert.False(t, isAddressUsed(book, addrZ, ""))
	assert.False(t, isAddressUsed(newBook(testOwner), addrX, ""))
}

func TestAddressIndex_findAliasByAddress(t *testing.T) {
	book := newBook(testOwner)
	assert.Equal(t, "", findAliasByAddress(book, addrX))

	book.put(Contact{Alias: "Mom", Address: addrX})
	book.put(Contact{Alias: "Dad", Address: addrY})
	assert.Equal(t, "Mom", findAliasByAddress(book, addrX))
	assert.Equal(t, "Dad", findAliasByAddress(book, addrY))
	assert.Equal(t, "", findAliasByAddress(book, addrZ))

	// first match in alias order
	book.Contacts = []Contact{
		{Alias: "Aunt", Address: addrY},
		{Alias: "Dad", Address: addrY},
	}
	assert.Equal(t, "Aunt", findAliasByAddress(book, addrY))
}

func TestAddressIndex_Owner(t *testing.T) {
	book, _ := initBook(t)
	defer finalizeTest(book.ctx)

	book.store.add(testOwner, "Mom", addrX)

	used, err := book.IsAddressUsed(testOwner, addrX)
	assert.NoError(t, err)
	assert.True(t, used)
	used, _ = book.IsAddressUsed(testOther, addrX)
	assert.False(t, used)

	alias, err := book.FindAliasByAddress(testOwner, addrX)
	assert.NoError(t, err)
	assert.Equal(t, "Mom", alias)
	alias, _ = book.FindAliasByAddress(testOwner, addrY)
	assert.Equal(t, "", alias)

	used, err = book.index.isAddressUsed(testOwner, addrX, "Mom")
	assert.NoError(t, err)
	assert.False(t, used)
}
