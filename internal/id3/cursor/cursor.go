// Package cursor provides bounds-checked sequential reads over an
// immutable byte buffer.
package cursor

import (
	"errors"
	"fmt"
)

var ErrOutOfBounds = errors.New("cursor: out of bounds")

// Cursor is a read position into a buffer. The buffer is never written.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	buf []byte
	pos int
}

func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) Len() int {
	return len(c.buf)
}

// Read returns the next n bytes and advances past them. The returned
// slice aliases the underlying buffer.
func (c *Cursor) Read(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Peek returns the next n bytes without advancing.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf)-c.pos {
		return nil, fmt.Errorf("%w: read %d at offset %d (len %d)", ErrOutOfBounds, n, c.pos, len(c.buf))
	}
	return c.buf[c.pos : c.pos+n], nil
}

func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Skip advances n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.Read(n)
	return err
}

// Rest is a view of every byte not yet read.
func (c *Cursor) Rest() []byte {
	return c.buf[c.pos:]
}

// Remaining reports how many bytes lie between the current position and
// boundary. It never goes negative.
func (c *Cursor) Remaining(boundary int) int {
	if boundary <= c.pos {
		return 0
	}
	return boundary - c.pos
}
