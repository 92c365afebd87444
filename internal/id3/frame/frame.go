package frame

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/danmuck/id3ctl/internal/id3/cursor"
)

const HeaderLen = 10

// First flag byte.
const (
	FlagTagPreservation  byte = 0x80
	FlagFilePreservation byte = 0x40
	FlagReadOnly         byte = 0x20
)

// Second flag byte.
const (
	FlagCompressed byte = 0x80
	FlagEncryption byte = 0x40
	FlagGroup      byte = 0x20
)

var ErrInvalidID = errors.New("frame: id must be 4 bytes")

// Header is the fixed 10-byte frame header. Size is a plain big-endian
// count, unlike the synchsafe tag size.
type Header struct {
	ID               string
	Size             uint32
	TagPreservation  bool
	FilePreservation bool
	ReadOnly         bool
	Compressed       bool
	Encryption       bool
	Group            bool
}

// Frame is one decoded record. Attribute is a Text, Picture or Opaque.
type Frame struct {
	Header    Header
	Attribute Attribute
}

// DecodeHeader reads a frame header. Flag bits are taken positionally and
// never rejected; Size is not checked against any boundary here.
func DecodeHeader(c *cursor.Cursor) (Header, error) {
	b, err := c.Read(HeaderLen)
	if err != nil {
		return Header{}, fmt.Errorf("frame: header: %w", err)
	}
	return Header{
		ID:               string(b[0:4]),
		Size:             binary.BigEndian.Uint32(b[4:8]),
		TagPreservation:  b[8]&FlagTagPreservation != 0,
		FilePreservation: b[8]&FlagFilePreservation != 0,
		ReadOnly:         b[8]&FlagReadOnly != 0,
		Compressed:       b[9]&FlagCompressed != 0,
		Encryption:       b[9]&FlagEncryption != 0,
		Group:            b[9]&FlagGroup != 0,
	}, nil
}

// EncodeHeader is the inverse of DecodeHeader.
func EncodeHeader(h Header) ([]byte, error) {
	if len(h.ID) != 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, h.ID)
	}
	buf := make([]byte, HeaderLen)
	copy(buf[0:4], h.ID)
	binary.BigEndian.PutUint32(buf[4:8], h.Size)
	buf[8] = flagByte(h.TagPreservation, h.FilePreservation, h.ReadOnly)
	buf[9] = flagByte(h.Compressed, h.Encryption, h.Group)
	return buf, nil
}

func flagByte(b7, b6, b5 bool) byte {
	var f byte
	if b7 {
		f |= 0x80
	}
	if b6 {
		f |= 0x40
	}
	if b5 {
		f |= 0x20
	}
	return f
}
