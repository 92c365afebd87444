package id3

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/id3ctl/internal/id3/cursor"
	"github.com/danmuck/id3ctl/internal/id3/frame"
	"github.com/danmuck/id3ctl/internal/id3/synchsafe"
	"github.com/rs/zerolog"
)

// Limits constrains per-frame memory use. Zero disables a limit.
type Limits struct {
	MaxFrameBytes uint32
}

func DefaultLimits() Limits {
	return Limits{MaxFrameBytes: 16 * 1024 * 1024}
}

type Option func(*Decoder)

func WithLogger(l zerolog.Logger) Option {
	return func(d *Decoder) { d.log = l }
}

func WithLimits(l Limits) Option {
	return func(d *Decoder) { d.limits = l }
}

// Decoder turns a resident byte buffer into a Tag. It holds no per-parse
// state and may be shared.
type Decoder struct {
	log    zerolog.Logger
	limits Limits
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: zerolog.Nop(), limits: DefaultLimits()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses the tag at the start of buf with default options.
func Decode(buf []byte) (*Tag, error) {
	return NewDecoder().Decode(buf)
}

// Decode parses the tag header, then frames until the declared tag size is
// used up or padding starts. Structural errors discard the whole tag. A
// frame using an unsupported feature is recorded in Tag.Skipped and the
// loop moves on to the next frame.
func (d *Decoder) Decode(buf []byte) (*Tag, error) {
	c := cursor.New(buf)
	h, err := DecodeTagHeader(c)
	if err != nil {
		return nil, err
	}
	end := h.End()

	if h.Extended {
		if err := skipExtendedHeader(c, h, end); err != nil {
			return nil, err
		}
	}

	tag := &Tag{Header: h}
	for {
		remaining := c.Remaining(end)
		if remaining < frame.HeaderLen {
			if remaining > 0 {
				d.log.Debug().Int("offset", c.Pos()).Int("bytes", remaining).Msg("id3: trailing bytes ignored")
			}
			break
		}

		offset := c.Pos()
		next, err := c.Peek(1)
		if err != nil {
			return nil, &FrameError{Offset: offset, Err: err}
		}
		if next[0] == 0 {
			d.log.Debug().Int("offset", offset).Int("bytes", remaining).Msg("id3: padding")
			break
		}

		fh, err := frame.DecodeHeader(c)
		if err != nil {
			return nil, &FrameError{Offset: offset, Err: err}
		}
		if left := c.Remaining(end); int64(fh.Size) > int64(left) {
			return nil, &FrameError{
				Offset: offset,
				ID:     fh.ID,
				Err:    fmt.Errorf("%w: size %d, %d bytes left", ErrFrameOverrun, fh.Size, left),
			}
		}
		if d.limits.MaxFrameBytes > 0 && fh.Size > d.limits.MaxFrameBytes {
			return nil, &FrameError{
				Offset: offset,
				ID:     fh.ID,
				Err:    fmt.Errorf("%w: size %d > %d", ErrFrameTooLarge, fh.Size, d.limits.MaxFrameBytes),
			}
		}

		attr, err := frame.DecodeBody(c, fh)
		if err != nil {
			ferr := &FrameError{Offset: offset, ID: fh.ID, Err: err}
			if Classify(err) == ClassUnsupported {
				d.log.Warn().Err(err).Str("id", fh.ID).Int("offset", offset).Msg("id3: frame skipped")
				tag.Skipped = append(tag.Skipped, ferr)
				continue
			}
			return nil, ferr
		}

		d.log.Debug().
			Str("id", fh.ID).
			Uint32("size", fh.Size).
			Stringer("kind", attr.Kind()).
			Int("offset", offset).
			Msg("id3: frame decoded")
		tag.Frames = append(tag.Frames, frame.Frame{Header: fh, Attribute: attr})
	}

	return tag, nil
}

// skipExtendedHeader steps over the optional extended header. Its size
// field is big-endian and self-exclusive in v2.3, synchsafe and
// self-inclusive in v2.4.
func skipExtendedHeader(c *cursor.Cursor, h TagHeader, end int) error {
	offset := c.Pos()
	b, err := c.Read(4)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtendedHeader, err)
	}

	var body int64
	if h.Version >= 4 {
		size, err := synchsafe.Decode([4]byte(b))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExtendedHeader, err)
		}
		body = int64(size) - 4
	} else {
		body = int64(binary.BigEndian.Uint32(b))
	}

	if body < 0 || body > int64(c.Remaining(end)) {
		return fmt.Errorf("%w: size %d at offset %d", ErrExtendedHeader, body, offset)
	}
	if err := c.Skip(int(body)); err != nil {
		return fmt.Errorf("%w: %w", ErrExtendedHeader, err)
	}
	return nil
}
