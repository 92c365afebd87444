package frame

import (
	"fmt"
	"strings"

	"github.com/danmuck/id3ctl/internal/id3/cursor"
	"github.com/danmuck/id3ctl/internal/id3/text"
)

// Kind is the decoded shape of a frame payload, chosen once from the id.
type Kind uint8

const (
	KindOpaque Kind = iota
	KindText
	KindPicture
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPicture:
		return "picture"
	default:
		return "opaque"
	}
}

// KindOf maps a frame id to its payload kind. Text and URL frames
// (T***, W***) decode as text, APIC as a picture, anything else is
// kept opaque. TXXX and WXXX carry a description and a value split by a
// NUL, so they stay opaque rather than lose the value.
func KindOf(id string) Kind {
	switch {
	case id == "APIC":
		return KindPicture
	case id == "TXXX" || id == "WXXX":
		return KindOpaque
	case len(id) == 4 && (id[0] == 'T' || id[0] == 'W'):
		return KindText
	default:
		return KindOpaque
	}
}

type Attribute interface {
	Kind() Kind
}

type Text struct {
	Value    string
	Encoding text.Encoding
}

func (Text) Kind() Kind { return KindText }

// UTF8 renders Value for display.
func (t Text) UTF8() string { return text.ToUTF8(t.Value) }

// Picture is the payload of an APIC frame.
type Picture struct {
	Encoding    byte
	MIMEType    string
	PictureType byte
	Description string
	Data        []byte
}

func (Picture) Kind() Kind { return KindPicture }

// Ext guesses a file extension from the MIME type.
func (p Picture) Ext() string {
	switch strings.ToLower(strings.TrimSpace(p.MIMEType)) {
	case "image/jpeg", "image/jpg", "jpg", "jpeg":
		return ".jpg"
	case "image/png", "png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/webp":
		return ".webp"
	case "-->":
		return ".url"
	default:
		return ".bin"
	}
}

// Opaque carries the raw payload of a frame id with no dedicated decoder.
type Opaque struct {
	Data []byte
}

func (Opaque) Kind() Kind { return KindOpaque }

// DecodeBody reads exactly h.Size bytes and decodes them by KindOf(h.ID).
// Decoded values never alias the cursor's buffer.
func DecodeBody(c *cursor.Cursor, h Header) (Attribute, error) {
	payload, err := c.Read(int(h.Size))
	if err != nil {
		return nil, fmt.Errorf("frame: %s body: %w", h.ID, err)
	}

	switch KindOf(h.ID) {
	case KindPicture:
		return decodePicture(payload)
	case KindText:
		d := text.DecodeFrame(payload)
		return Text{Value: d.Value, Encoding: d.Encoding}, nil
	default:
		data := make([]byte, len(payload))
		copy(data, payload)
		return Opaque{Data: data}, nil
	}
}

// decodePicture parses encoding, mime type, picture type and description
// from the front of the payload. Whatever follows is image data.
func decodePicture(payload []byte) (Attribute, error) {
	pc := cursor.New(payload)

	enc, err := pc.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("frame: APIC encoding: %w", err)
	}
	if err := text.CheckEncoding(enc); err != nil {
		return nil, fmt.Errorf("frame: APIC: %w", err)
	}

	mime, err := text.ReadNullTerminated(pc)
	if err != nil {
		return nil, fmt.Errorf("frame: APIC mime type: %w", err)
	}

	ptype, err := pc.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("frame: APIC picture type: %w", err)
	}

	desc, err := text.ReadNullTerminated(pc)
	if err != nil {
		return nil, fmt.Errorf("frame: APIC description: %w", err)
	}

	data := make([]byte, len(pc.Rest()))
	copy(data, pc.Rest())

	return Picture{
		Encoding:    enc,
		MIMEType:    mime,
		PictureType: ptype,
		Description: desc,
		Data:        data,
	}, nil
}
