package common

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	AddressIDBytes = 20
	AddressBytes   = AddressIDBytes + 1

	eoaPrefix      = "hx"
	contractPrefix = "cx"
)

// Address is an ICON style account handle. The first byte tells an
// externally owned account (0) from a contract (1); the remaining
// 20 bytes are the account ID.
type Address [AddressBytes]byte

var ErrInvalidAddress = errors.New("invalid address")

func NewAddress(b []byte) *Address {
	a := new(Address)
	if err := a.SetBytes(b); err != nil {
		return nil
	}
	return a
}

// NewAddressFromString returns nil if s is not a valid address.
func NewAddressFromString(s string) *Address {
	a := new(Address)
	if err := a.SetString(s); err != nil {
		return nil
	}
	return a
}

func NewContractAddress(id []byte) *Address {
	a := new(Address)
	a[0] = 1
	copy(a[1+AddressIDBytes-len(id):], id)
	return a
}

func NewAccountAddress(id []byte) *Address {
	a := new(Address)
	copy(a[1+AddressIDBytes-len(id):], id)
	return a
}

// SetString parses "hx..." or "cx..." followed by at most 40 hex digits.
// Shorter IDs are left padded with zeros.
func (a *Address) SetString(s string) error {
	var isContract bool
	switch {
	case strings.HasPrefix(s, eoaPrefix):
	case strings.HasPrefix(s, contractPrefix):
		isContract = true
	default:
		return errors.Wrapf(ErrInvalidAddress, "prefix of %q", s)
	}

	digits := s[len(eoaPrefix):]
	if len(digits) == 0 || len(digits) > AddressIDBytes*2 {
		return errors.Wrapf(ErrInvalidAddress, "length of %q", s)
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	id, err := hex.DecodeString(digits)
	if err != nil {
		return errors.Wrapf(ErrInvalidAddress, "hex of %q", s)
	}

	var n Address
	if isContract {
		n[0] = 1
	}
	copy(n[1+AddressIDBytes-len(id):], id)
	*a = n
	return nil
}

func (a *Address) SetBytes(b []byte) error {
	if len(b) != AddressBytes || b[0] > 1 {
		return errors.Wrapf(ErrInvalidAddress, "bytes=%x", b)
	}
	copy(a[:], b)
	return nil
}

func (a Address) String() string {
	if a.IsContract() {
		return contractPrefix + hex.EncodeToString(a.ID())
	}
	return eoaPrefix + hex.EncodeToString(a.ID())
}

func (a Address) Bytes() []byte {
	bs := make([]byte, AddressBytes)
	copy(bs, a[:])
	return bs
}

func (a Address) ID() []byte {
	return a[1:]
}

func (a Address) IsContract() bool {
	return a[0] == 1
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

func (a Address) Format(f fmt.State, c rune) {
	switch c {
	case 'v', 's':
		fmt.Fprint(f, a.String())
	case 'x':
		fmt.Fprintf(f, "%x", a[:])
	default:
		fmt.Fprintf(f, "%%!%c(address=%s)", c, a.String())
	}
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return a.SetString(s)
}
