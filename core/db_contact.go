package core

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/codec"
)

type Contact struct {
	Alias     string
	Address   common.Address
	CreatedAt uint64
	UpdatedAt uint64
}

func (c *Contact) String() string {
	return fmt.Sprintf("Alias: %s, Address: %s, CreatedAt: %d, UpdatedAt: %d",
		c.Alias, c.Address.String(), c.CreatedAt, c.UpdatedAt)
}

type BookData struct {
	// sorted by alias
	Contacts []Contact
}

// Book is the contact book of one owner.
type Book struct {
	Owner common.Address
	BookData
}

func newBook(owner common.Address) *Book {
	return &Book{Owner: owner, BookData: BookData{Contacts: make([]Contact, 0)}}
}

func (b *Book) ID() []byte {
	return b.Owner.Bytes()
}

func (b *Book) Bytes() ([]byte, error) {
	var bytes []byte
	if bs, err := codec.MarshalToBytes(&b.BookData); err != nil {
		return nil, err
	} else {
		bytes = bs
	}
	return bytes, nil
}

func (b *Book) String() string {
	bs, err := json.Marshal(b)
	if err != nil {
		return "Can't covert Message to json"
	}
	return string(bs)
}

func (b *Book) SetBytes(bs []byte) error {
	_, err := codec.UnmarshalFromBytes(bs, &b.BookData)
	if err != nil {
		return err
	}
	if b.Contacts == nil {
		b.Contacts = make([]Contact, 0)
	}
	return nil
}

func NewBookFromBytes(bs []byte) (*Book, error) {
	b := new(Book)
	if err := b.SetBytes(bs); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Book) search(alias string) (int, bool) {
	i := sort.Search(len(b.Contacts), func(i int) bool {
		return b.Contacts[i].Alias >= alias
	})
	return i, i < len(b.Contacts) && b.Contacts[i].Alias == alias
}

func (b *Book) get(alias string) *Contact {
	if i, ok := b.search(alias); ok {
		return &b.Contacts[i]
	}
	return nil
}

func (b *Book) put(c Contact) {
	i, ok := b.search(c.Alias)
	if ok {
		b.Contacts[i] = c
		return
	}
	b.Contacts = append(b.Contacts, Contact{})
	copy(b.Contacts[i+1:], b.Contacts[i:])
	b.Contacts[i] = c
}

func (b *Book) remove(alias string) bool {
	i, ok := b.search(alias)
	if !ok {
		return false
	}
	b.Contacts = append(b.Contacts[:i], b.Contacts[i+1:]...)
	return true
}

func (b *Book) list() []Contact {
	contacts := make([]Contact, len(b.Contacts))
	copy(contacts, b.Contacts)
	return contacts
}

type SponsoredData struct {
	// sorted
	Aliases []string
}

// SponsoredSet holds the aliases an owner has sponsored. Members never
// leave the set.
type SponsoredSet struct {
	Owner common.Address
	SponsoredData
}

func newSponsoredSet(owner common.Address) *SponsoredSet {
	return &SponsoredSet{Owner: owner, SponsoredData: SponsoredData{Aliases: make([]string, 0)}}
}

func (s *SponsoredSet) ID() []byte {
	return s.Owner.Bytes()
}

func (s *SponsoredSet) Bytes() ([]byte, error) {
	var bytes []byte
	if bs, err := codec.MarshalToBytes(&s.SponsoredData); err != nil {
		return nil, err
	} else {
		bytes = bs
	}
	return bytes, nil
}

func (s *SponsoredSet) String() string {
	bs, err := json.Marshal(s)
	if err != nil {
		return "Can't covert Message to json"
	}
	return string(bs)
}

func (s *SponsoredSet) SetBytes(bs []byte) error {
	_, err := codec.UnmarshalFromBytes(bs, &s.SponsoredData)
	if err != nil {
		return err
	}
	if s.Aliases == nil {
		s.Aliases = make([]string, 0)
	}
	return nil
}

func NewSponsoredSetFromBytes(bs []byte) (*SponsoredSet, error) {
	s := new(SponsoredSet)
	if err := s.SetBytes(bs); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SponsoredSet) contains(alias string) bool {
	i := sort.SearchStrings(s.Aliases, alias)
	return i < len(s.Aliases) && s.Aliases[i] == alias
}

// add returns false if alias is already a member.
func (s *SponsoredSet) add(alias string) bool {
	i := sort.SearchStrings(s.Aliases, alias)
	if i < len(s.Aliases) && s.Aliases[i] == alias {
		return false
	}
	s.Aliases = append(s.Aliases, "")
	copy(s.Aliases[i+1:], s.Aliases[i:])
	s.Aliases[i] = alias
	return true
}

func (s *SponsoredSet) list() []string {
	aliases := make([]string, len(s.Aliases))
	copy(aliases, s.Aliases)
	return aliases
}
