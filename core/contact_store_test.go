package core

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestContactStore_Add(t *testing.T) {
	book, _ := initBook(t)
	defer finalizeTest(book.ctx)
	store := book.store

	ok, err := store.add(testOwner, "Mom", addrX)
	assert.NoError(t, err)
	assert.True(t, ok)

	contact, err := store.get(testOwner, "Mom")
	assert.NoError(t, err)
	assert.Equal(t, "Mom", contact.Alias)
	assert.True(t, addrX.Equal(contact.Address))
	assert.Equal(t, uint64(testNow), contact.CreatedAt)
	assert.Equal(t, uint64(testNow), contact.UpdatedAt)

	count, err := store.count(testOwner)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), count)

	// duplicate alias keeps the existing record
	ok, err = store.add(testOwner, "Mom", addrY)
	assert.False(t, ok)
	assert.Equal(t, ErrDuplicateAlias, errors.Cause(err))
	contact, _ = store.get(testOwner, "Mom")
	assert.True(t, addrX.Equal(contact.Address))

	// address reuse
	ok, err = store.add(testOwner, "Dad", addrX)
	assert.False(t, ok)
	assert.Equal(t, ErrDuplicateAddress, errors.Cause(err))
	contact, _ = store.get(testOwner, "Dad")
	assert.Nil(t, contact)

	// empty alias
	ok, err = store.add(testOwner, "", addrY)
	assert.False(t, ok)
	assert.Equal(t, ErrInvalidAlias, errors.Cause(err))

	count, _ = store.count(testOwner)
	assert.Equal(t, uint32(1), count)

	stats, _ := book.Statistics()
	assert.Equal(t, uint64(1), stats.Contacts)
}

func TestContactStore_Isolation(t *testing.T) {
	book, _ := initBook(t)
	defer finalizeTest(book.ctx)
	store := book.store

	_, err := store.add(testOwner, "Mom", addrX)
	assert.NoError(t, err)

	// same alias and address are free for another owner
	ok, err := store.add(testOther, "Mom", addrX)
	assert.NoError(t, err)
	assert.True(t, ok)
	_, err = store.add(testOther, "Dad", addrY)
	assert.NoError(t, err)

	count, _ := store.count(testOwner)
	assert.Equal(t, uint32(1), count)
	count, _ = store.count(testOther)
	assert.Equal(t, uint32(2), count)

	contact, _ := store.get(testOwner, "Dad")
	assert.Nil(t, contact)

	list, _ := store.list(testOwner)
	assert.Equal(t, 1, len(list))

	ok, err = store.delete(testOther, "Mom")
	assert.NoError(t, err)
	assert.True(t, ok)
	contact, _ = store.get(testOwner, "Mom")
	assert.NotNil(t, contact)
}

func TestContactStore_Edit(t *testing.T) {
	book, clk := initBook(t)
	defer finalizeTest(book.ctx)
	store := book.store

	store.add(testOwner, "Mom", addrX)
	store.add(testOwner, "Dad", addrY)
	clk.Add(time.Minute)

	// own current address
	ok, err := store.edit(testOwner, "Mom", addrX)
	assert.NoError(t, err)
	assert.True(t, ok)

	// address of another alias
	ok, err = store.edit(testOwner, "Mom", addrY)
	assert.False(t, ok)
	assert.Equal(t, ErrDuplicateAddress, errors.Cause(err))

	ok, err = store.edit(testOwner, "Mom", addrZ)
	assert.NoError(t, err)
	assert.True(t, ok)
	contact, _ := store.get(testOwner, "Mom")
	assert.True(t, addrZ.Equal(contact.Address))
	assert.Equal(t, uint64(testNow), contact.CreatedAt)
	assert.Equal(t, uint64(testNow+60), contact.UpdatedAt)

	// old address is free again
	ok, err = store.add(testOwner, "Sis", addrX)
	assert.NoError(t, err)
	assert.True(t, ok)

	// missing alias creates nothing
	ok, err = store.edit(testOwner, "Ghost", testMedium)
	assert.NoError(t, err)
	assert.False(t, ok)
	contact, _ = store.get(testOwner, "Ghost")
	assert.Nil(t, contact)
	count, _ := store.count(testOwner)
	assert.Equal(t, uint32(3), count)
}

func TestContactStore_Delete(t *testing.T) {
	book, _ := initBook(t)
	defer finalizeTest(book.ctx)
	store := book.store

	store.add(testOwner, "Mom", addrX)

	ok, err := store.delete(testOwner, "Ghost")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.delete(testOwner, "Mom")
	assert.NoError(t, err)
	assert.True(t, ok)

	count, _ := store.count(testOwner)
	assert.Equal(t, uint32(0), count)
	list, _ := store.list(testOwner)
	assert.Equal(t, 0, len(list))

	// deleted alias and address may be reused
	ok, err = store.add(testOwner, "Mom", addrX)
	assert.NoError(t, err)
	assert.True(t, ok)

	stats, _ := book.Statistics()
	assert.Equal(t, uint64(1), stats.Contacts)
}

func TestContactStore_List(t *testing.T) {
	book, _ := initBook(t)
	defer finalizeTest(book.ctx)
	store := book.store

	store.add(testOwner, "b", addrY)
	store.add(testOwner, "c", addrZ)
	store.add(testOwner, "a", addrX)

	list, err := store.list(testOwner)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(list))
	assert.Equal(t, "a", list[0].Alias)
	assert.Equal(t, "b", list[1].Alias)
	assert.Equal(t, "c", list[2].Alias)

	// the returned slice is a copy
	list[0].Alias = "z"
	contact, _ := store.get(testOwner, "a")
	assert.NotNil(t, contact)
}
