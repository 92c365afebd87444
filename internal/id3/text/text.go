// Package text decodes the string payloads carried by ID3v2 frames.
//
// Frame text is kept as the raw 8-bit characters found in the tag. UTF8
// renders those characters as UTF-8 for display.
package text

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/danmuck/id3ctl/internal/id3/cursor"
	"golang.org/x/text/encoding/charmap"
)

// EncodingLatin1 is the only sub-field encoding byte accepted inside
// structured frames.
const EncodingLatin1 byte = 0x00

var (
	ErrUnsupportedEncoding = errors.New("text: unsupported encoding")
	ErrUnterminated        = errors.New("text: missing NUL terminator")
)

// Encoding records which branch produced a decoded frame string.
type Encoding uint8

const (
	Latin1 Encoding = iota
	// UTF16Collapsed keeps only the even-offset byte of each 16-bit unit
	// following a 01 FF FE marker.
	UTF16Collapsed
)

func (e Encoding) String() string {
	switch e {
	case Latin1:
		return "latin1"
	case UTF16Collapsed:
		return "utf16-collapsed"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

var utf16Marker = []byte{0x01, 0xFF, 0xFE}

type Decoded struct {
	Value    string
	Encoding Encoding
}

// DecodeFrame decodes a text frame payload. Leading NUL bytes are skipped
// and the result ends at the first NUL.
func DecodeFrame(payload []byte) Decoded {
	i := 0
	for i < len(payload) && payload[i] == 0 {
		i++
	}
	body := payload[i:]

	if bytes.HasPrefix(body, utf16Marker) {
		units := body[len(utf16Marker):]
		out := make([]byte, len(units)/2)
		for k := range out {
			out[k] = units[2*k]
		}
		return Decoded{Value: cString(out), Encoding: UTF16Collapsed}
	}
	return Decoded{Value: cString(body), Encoding: Latin1}
}

// ReadNullTerminated reads up to and including the next NUL and returns
// the bytes before it.
func ReadNullTerminated(c *cursor.Cursor) (string, error) {
	n := bytes.IndexByte(c.Rest(), 0)
	if n < 0 {
		return "", fmt.Errorf("%w at offset %d", ErrUnterminated, c.Pos())
	}
	b, err := c.Read(n + 1)
	if err != nil {
		return "", err
	}
	return string(b[:n]), nil
}

// CheckEncoding rejects every sub-field encoding except Latin-1.
func CheckEncoding(enc byte) error {
	if enc != EncodingLatin1 {
		return fmt.Errorf("%w: 0x%02X", ErrUnsupportedEncoding, enc)
	}
	return nil
}

func ToUTF8(s string) string {
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
