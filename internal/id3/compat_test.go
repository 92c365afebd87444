package id3_test

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2/v2"
	dtag "github.com/dhowden/tag"

	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/danmuck/id3ctl/internal/id3/frame"
)

var jpegStub = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xFF, 0xD9}

// writeV23 produces a v2.3 tag with Latin-1 frames using an independent
// ID3 writer.
func writeV23(t *testing.T) []byte {
	t.Helper()
	w := id3v2.NewEmptyTag()
	w.SetVersion(3)
	w.SetDefaultEncoding(id3v2.EncodingISO)
	w.SetTitle("Hello")
	w.SetArtist("Gopher")
	w.SetAlbum("Synchsafe")
	w.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingISO,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "",
		Picture:     jpegStub,
	})

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeExternallyWrittenTag(t *testing.T) {
	raw := writeV23(t)

	tag, err := id3.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tag.Header.Version != 3 {
		t.Fatalf("expected v2.3, got %d", tag.Header.Version)
	}
	if tag.Header.End() > len(raw) {
		t.Fatalf("declared size %d exceeds buffer %d", tag.Header.Size, len(raw))
	}

	want := map[string]string{"TIT2": "Hello", "TPE1": "Gopher", "TALB": "Synchsafe"}
	for id, v := range want {
		got, ok := tag.Text(id)
		if !ok || got != v {
			t.Fatalf("%s: got %q ok=%v want %q", id, got, ok, v)
		}
	}

	pics := tag.Pictures()
	if len(pics) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(pics))
	}
	if pics[0].MIMEType != "image/jpeg" || pics[0].Description != "" || pics[0].PictureType != id3v2.PTFrontCover {
		t.Fatalf("unexpected picture: %+v", pics[0])
	}
	if !bytes.Equal(pics[0].Data, jpegStub) {
		t.Fatalf("picture data mismatch")
	}
}

func TestDecodeAgreesWithReferenceReader(t *testing.T) {
	raw := writeV23(t)

	ours, err := id3.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	theirs, err := dtag.ReadID3v2Tags(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reference read: %v", err)
	}

	title, _ := ours.Text("TIT2")
	if title != theirs.Title() {
		t.Fatalf("title: ours %q theirs %q", title, theirs.Title())
	}
	artist, _ := ours.Text("TPE1")
	if artist != theirs.Artist() {
		t.Fatalf("artist: ours %q theirs %q", artist, theirs.Artist())
	}

	ref := theirs.Picture()
	if ref == nil {
		t.Fatalf("reference reader found no picture")
	}
	f, ok := ours.Frame("APIC")
	if !ok {
		t.Fatalf("no APIC frame decoded")
	}
	pic := f.Attribute.(frame.Picture)
	if pic.MIMEType != ref.MIMEType {
		t.Fatalf("mime: ours %q theirs %q", pic.MIMEType, ref.MIMEType)
	}
	if !bytes.Equal(pic.Data, ref.Data) {
		t.Fatalf("picture data disagrees with reference reader")
	}
}
