package codec

import (
	"io"

	ugorji "github.com/ugorji/go/codec"
)

type Codec interface {
	Marshal(w io.Writer, v interface{}) error
	Unmarshal(r io.Reader, v interface{}) error
	MarshalToBytes(v interface{}) ([]byte, error)
	UnmarshalFromBytes(b []byte, v interface{}) ([]byte, error)
}

type mpCodec struct {
	handle *ugorji.MsgpackHandle
}

var mpHandle = new(ugorji.MsgpackHandle)

func init() {
	mpHandle.WriteExt = true
}

// MP is the msgpack codec shared by the database records and the IPC
// channel.
var MP Codec = &mpCodec{handle: mpHandle}

func (c *mpCodec) Marshal(w io.Writer, v interface{}) error {
	return ugorji.NewEncoder(w, c.handle).Encode(v)
}

func (c *mpCodec) Unmarshal(r io.Reader, v interface{}) error {
	return ugorji.NewDecoder(r, c.handle).Decode(v)
}

func (c *mpCodec) MarshalToBytes(v interface{}) ([]byte, error) {
	var b []byte
	if err := ugorji.NewEncoderBytes(&b, c.handle).Encode(v); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalFromBytes decodes v from b. The input is returned untouched so
// callers can log it on failure.
func (c *mpCodec) UnmarshalFromBytes(b []byte, v interface{}) ([]byte, error) {
	return b, ugorji.NewDecoderBytes(b, c.handle).Decode(v)
}

func MarshalToBytes(v interface{}) ([]byte, error) {
	return MP.MarshalToBytes(v)
}

func UnmarshalFromBytes(b []byte, v interface{}) ([]byte, error) {
	return MP.UnmarshalFromBytes(b, v)
}
