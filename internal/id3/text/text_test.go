package text

import (
	"errors"
	"testing"

	"github.com/danmuck/id3ctl/internal/id3/cursor"
)

func TestDecodeFrameLatin1(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "plain", in: []byte("Hello"), want: "Hello"},
		{name: "encoding byte skipped", in: []byte("\x00Hello"), want: "Hello"},
		{name: "many leading zeros", in: []byte("\x00\x00\x00abc"), want: "abc"},
		{name: "terminator", in: []byte("\x00abc\x00def"), want: "abc"},
		{name: "all zero", in: []byte{0, 0, 0}, want: ""},
		{name: "empty", in: nil, want: ""},
	}
	for _, tc := range cases {
		got := DecodeFrame(tc.in)
		if got.Value != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got.Value, tc.want)
		}
		if got.Encoding != Latin1 {
			t.Fatalf("%s: expected latin1, got %s", tc.name, got.Encoding)
		}
	}
}

func TestDecodeFrameCollapsesUTF16(t *testing.T) {
	word := "Gopher"
	payload := []byte{0x01, 0xFF, 0xFE}
	for i := 0; i < len(word); i++ {
		payload = append(payload, word[i], byte(0x40+i))
	}
	got := DecodeFrame(payload)
	if got.Encoding != UTF16Collapsed {
		t.Fatalf("expected utf16-collapsed, got %s", got.Encoding)
	}
	if got.Value != word {
		t.Fatalf("got %q want %q", got.Value, word)
	}
	if len(got.Value) != (len(payload)-3)/2 {
		t.Fatalf("expected length %d, got %d", (len(payload)-3)/2, len(got.Value))
	}
}

func TestDecodeFrameCollapsedOddTail(t *testing.T) {
	got := DecodeFrame([]byte{0x00, 0x01, 0xFF, 0xFE, 'a', 0, 'b', 0, 'c'})
	if got.Value != "ab" {
		t.Fatalf("got %q want %q", got.Value, "ab")
	}
}

func TestReadNullTerminated(t *testing.T) {
	c := cursor.New([]byte("image/jpeg\x00\x03\x00rest"))
	mime, err := ReadNullTerminated(c)
	if err != nil {
		t.Fatalf("read mime: %v", err)
	}
	if mime != "image/jpeg" {
		t.Fatalf("unexpected mime %q", mime)
	}
	if c.Pos() != len("image/jpeg")+1 {
		t.Fatalf("expected cursor past terminator, got %d", c.Pos())
	}
	_ = c.Skip(1)
	desc, err := ReadNullTerminated(c)
	if err != nil || desc != "" {
		t.Fatalf("expected empty description, got %q err=%v", desc, err)
	}
	if _, err := ReadNullTerminated(c); !errors.Is(err, ErrUnterminated) {
		t.Fatalf("expected ErrUnterminated, got %v", err)
	}
}

func TestCheckEncoding(t *testing.T) {
	if err := CheckEncoding(0); err != nil {
		t.Fatalf("latin1 rejected: %v", err)
	}
	for _, enc := range []byte{1, 2, 3, 0xFF} {
		if err := CheckEncoding(enc); !errors.Is(err, ErrUnsupportedEncoding) {
			t.Fatalf("encoding %d: expected ErrUnsupportedEncoding, got %v", enc, err)
		}
	}
}

func TestToUTF8(t *testing.T) {
	got := ToUTF8("k\xFCrzer \xE4\xF6")
	if got != "kürzer äö" {
		t.Fatalf("got %q", got)
	}
}
