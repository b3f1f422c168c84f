package common

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// HexInt is a big integer that renders as "0x..." in JSON and travels as
// its two's complement magnitude in msgpack.
type HexInt struct {
	big.Int
}

func NewHexInt(v int64) *HexInt {
	i := new(HexInt)
	i.SetInt64(v)
	return i
}

func NewHexIntFromBig(v *big.Int) *HexInt {
	i := new(HexInt)
	i.Set(v)
	return i
}

func (i *HexInt) Clone() *HexInt {
	return NewHexIntFromBig(&i.Int)
}

func (i HexInt) String() string {
	if i.Sign() < 0 {
		return "-0x" + new(big.Int).Neg(&i.Int).Text(16)
	}
	return "0x" + i.Text(16)
}

func (i *HexInt) SetString(s string) error {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	base := 10
	if strings.HasPrefix(s, "0x") {
		s = s[2:]
		base = 16
	}
	if _, ok := i.Int.SetString(s, base); !ok {
		return errors.Errorf("invalid integer %q", s)
	}
	if neg {
		i.Neg(&i.Int)
	}
	return nil
}

// MarshalBinary encodes a sign byte followed by the magnitude.
func (i HexInt) MarshalBinary() ([]byte, error) {
	mag := i.Bytes()
	bs := make([]byte, len(mag)+1)
	if i.Sign() < 0 {
		bs[0] = 1
	}
	copy(bs[1:], mag)
	return bs, nil
}

func (i *HexInt) UnmarshalBinary(bs []byte) error {
	if len(bs) == 0 {
		i.SetInt64(0)
		return nil
	}
	i.SetBytes(bs[1:])
	if bs[0] == 1 {
		i.Neg(&i.Int)
	}
	return nil
}

func (i HexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *HexInt) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return i.SetString(s)
}
