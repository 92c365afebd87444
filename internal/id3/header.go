package id3

import (
	"fmt"

	"github.com/danmuck/id3ctl/internal/id3/cursor"
	"github.com/danmuck/id3ctl/internal/id3/synchsafe"
)

const TagHeaderLen = 10

const (
	flagUnsynchronized byte = 0x80
	flagExtended       byte = 0x40
	flagExperimental   byte = 0x20
	flagsReserved      byte = 0x1F
)

var magic = [3]byte{'I', 'D', '3'}

// TagHeader is the 10-byte header in front of the frame region. Size
// counts the bytes after the header.
type TagHeader struct {
	ID             string
	Version        uint8
	Revision       uint8
	Unsynchronized bool
	Extended       bool
	Experimental   bool
	Size           uint32
}

// End is the offset one past the last byte of the tag, assuming the header
// starts at offset 0.
func (h TagHeader) End() int {
	return TagHeaderLen + int(h.Size)
}

func DecodeTagHeader(c *cursor.Cursor) (TagHeader, error) {
	b, err := c.Read(TagHeaderLen)
	if err != nil {
		return TagHeader{}, fmt.Errorf("id3: tag header: %w", err)
	}
	if [3]byte(b[0:3]) != magic {
		return TagHeader{}, fmt.Errorf("%w: %q", ErrInvalidMagic, b[0:3])
	}

	flags := b[5]
	if flags&flagsReserved != 0 {
		return TagHeader{}, fmt.Errorf("%w: 0x%02X", ErrInvalidFlags, flags)
	}

	size, err := synchsafe.Decode([4]byte(b[6:10]))
	if err != nil {
		return TagHeader{}, fmt.Errorf("id3: tag size: %w", err)
	}

	return TagHeader{
		ID:             string(b[0:3]),
		Version:        b[3],
		Revision:       b[4],
		Unsynchronized: flags&flagUnsynchronized != 0,
		Extended:       flags&flagExtended != 0,
		Experimental:   flags&flagExperimental != 0,
		Size:           size,
	}, nil
}

func EncodeTagHeader(h TagHeader) ([]byte, error) {
	size, err := synchsafe.Encode(h.Size)
	if err != nil {
		return nil, fmt.Errorf("id3: tag size: %w", err)
	}
	buf := make([]byte, TagHeaderLen)
	copy(buf[0:3], magic[:])
	buf[3] = h.Version
	buf[4] = h.Revision
	if h.Unsynchronized {
		buf[5] |= flagUnsynchronized
	}
	if h.Extended {
		buf[5] |= flagExtended
	}
	if h.Experimental {
		buf[5] |= flagExperimental
	}
	copy(buf[6:10], size[:])
	return buf, nil
}
