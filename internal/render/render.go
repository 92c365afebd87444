// Package render formats decoded tags for people and for tools.
package render

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/danmuck/id3ctl/internal/id3/frame"
	"github.com/danmuck/id3ctl/internal/id3/text"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// opaque payloads longer than this are cut in text output
const previewBytes = 16

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("render: unknown format %q", raw)
	}
}

type TagView struct {
	File           string        `json:"file,omitempty"`
	Version        string        `json:"version"`
	Unsynchronized bool          `json:"unsynchronized"`
	Extended       bool          `json:"extended"`
	Experimental   bool          `json:"experimental"`
	Size           uint32        `json:"size"`
	Frames         []FrameView   `json:"frames"`
	Skipped        []SkippedView `json:"skipped,omitempty"`
}

type FrameView struct {
	ID       string       `json:"id"`
	Kind     string       `json:"kind"`
	Size     uint32       `json:"size"`
	Flags    []string     `json:"flags,omitempty"`
	Text     string       `json:"text,omitempty"`
	Encoding string       `json:"encoding,omitempty"`
	Picture  *PictureView `json:"picture,omitempty"`
	Data     []byte       `json:"data,omitempty"`
}

type PictureView struct {
	MIMEType    string `json:"mime_type"`
	PictureType int    `json:"picture_type"`
	Description string `json:"description"`
	Bytes       int    `json:"bytes"`
}

type SkippedView struct {
	ID     string `json:"id"`
	Offset int    `json:"offset"`
	Error  string `json:"error"`
}

func View(file string, tag *id3.Tag) TagView {
	h := tag.Header
	v := TagView{
		File:           file,
		Version:        fmt.Sprintf("2.%d.%d", h.Version, h.Revision),
		Unsynchronized: h.Unsynchronized,
		Extended:       h.Extended,
		Experimental:   h.Experimental,
		Size:           h.Size,
		Frames:         make([]FrameView, 0, len(tag.Frames)),
	}
	for _, f := range tag.Frames {
		v.Frames = append(v.Frames, frameView(f))
	}
	for _, s := range tag.Skipped {
		v.Skipped = append(v.Skipped, SkippedView{ID: s.ID, Offset: s.Offset, Error: s.Err.Error()})
	}
	return v
}

func frameView(f frame.Frame) FrameView {
	fv := FrameView{
		ID:    f.Header.ID,
		Kind:  f.Attribute.Kind().String(),
		Size:  f.Header.Size,
		Flags: flagNames(f.Header),
	}
	switch a := f.Attribute.(type) {
	case frame.Text:
		fv.Text = a.UTF8()
		fv.Encoding = a.Encoding.String()
	case frame.Picture:
		fv.Picture = &PictureView{
			MIMEType:    a.MIMEType,
			PictureType: int(a.PictureType),
			Description: text.ToUTF8(a.Description),
			Bytes:       len(a.Data),
		}
	case frame.Opaque:
		fv.Data = a.Data
	}
	return fv
}

func flagNames(h frame.Header) []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(h.TagPreservation, "tag_preservation")
	add(h.FilePreservation, "file_preservation")
	add(h.ReadOnly, "read_only")
	add(h.Compressed, "compressed")
	add(h.Encryption, "encryption")
	add(h.Group, "group")
	return out
}

func Write(w io.Writer, file string, tag *id3.Tag, format Format) error {
	switch format {
	case FormatJSON:
		return JSON(w, file, tag)
	default:
		return Text(w, file, tag)
	}
}

func JSON(w io.Writer, file string, tag *id3.Tag) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(View(file, tag))
}

func Text(w io.Writer, file string, tag *id3.Tag) error {
	v := View(file, tag)
	var b strings.Builder
	if v.File != "" {
		fmt.Fprintf(&b, "%s\n", v.File)
	}
	fmt.Fprintf(&b, "tag: ID3v%s size=%d unsynchronized=%t extended=%t experimental=%t\n",
		v.Version, v.Size, v.Unsynchronized, v.Extended, v.Experimental)

	for _, f := range v.Frames {
		flags := "-"
		if len(f.Flags) > 0 {
			flags = strings.Join(f.Flags, ",")
		}
		fmt.Fprintf(&b, "  %s size=%d flags=%s ", f.ID, f.Size, flags)
		switch {
		case f.Picture != nil:
			fmt.Fprintf(&b, "picture mime=%s type=%d description=%q bytes=%d\n",
				f.Picture.MIMEType, f.Picture.PictureType, f.Picture.Description, f.Picture.Bytes)
		case f.Kind == frame.KindText.String():
			fmt.Fprintf(&b, "text=%q\n", f.Text)
		default:
			fmt.Fprintf(&b, "data=%s\n", preview(f.Data))
		}
	}
	for _, s := range v.Skipped {
		fmt.Fprintf(&b, "  %s skipped at offset %d: %s\n", s.ID, s.Offset, s.Error)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func preview(data []byte) string {
	if len(data) <= previewBytes {
		return hex.EncodeToString(data)
	}
	return fmt.Sprintf("%s... (%d bytes)", hex.EncodeToString(data[:previewBytes]), len(data))
}
