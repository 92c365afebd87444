package id3

import (
	"errors"
	"fmt"

	"github.com/danmuck/id3ctl/internal/id3/text"
)

var (
	ErrInvalidMagic   = errors.New("id3: invalid magic")
	ErrInvalidFlags   = errors.New("id3: invalid tag header flags")
	ErrFrameOverrun   = errors.New("id3: frame exceeds tag boundary")
	ErrFrameTooLarge  = errors.New("id3: frame exceeds size limit")
	ErrExtendedHeader = errors.New("id3: invalid extended header")
)

// Class groups decode failures by how the frame loop reacts to them.
type Class int

const (
	ClassNone Class = iota
	// ClassStructural aborts the whole tag.
	ClassStructural
	// ClassUnsupported skips one frame; decoding continues.
	ClassUnsupported
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassStructural:
		return "structural"
	case ClassUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, text.ErrUnsupportedEncoding):
		return ClassUnsupported
	default:
		return ClassStructural
	}
}

// FrameError locates a failure at the frame starting at Offset.
type FrameError struct {
	Offset int
	ID     string
	Err    error
}

func (e *FrameError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("id3: frame at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("id3: frame %s at offset %d: %v", e.ID, e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
