package common

import (
	"encoding/binary"
	"encoding/json"
)

func Uint64ToBytes(v uint64) []byte {
	bs := make([]byte, 8)
	binary.BigEndian.PutUint64(bs, v)
	return bs
}

func BytesToUint64(bs []byte) uint64 {
	if len(bs) < 8 {
		padded := make([]byte, 8)
		copy(padded[8-len(bs):], bs)
		bs = padded
	}
	return binary.BigEndian.Uint64(bs)
}

func Display(data interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "Can't covert data to json"
	}
	return string(b)
}
