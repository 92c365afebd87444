package id3

import "github.com/danmuck/id3ctl/internal/id3/frame"

// Tag is a decoded header plus its frames in file order.
type Tag struct {
	Header  TagHeader
	Frames  []frame.Frame
	Skipped []*FrameError
}

// Frame returns the first frame with the given id.
func (t *Tag) Frame(id string) (frame.Frame, bool) {
	for _, f := range t.Frames {
		if f.Header.ID == id {
			return f, true
		}
	}
	return frame.Frame{}, false
}

func (t *Tag) Text(id string) (string, bool) {
	f, ok := t.Frame(id)
	if !ok {
		return "", false
	}
	txt, ok := f.Attribute.(frame.Text)
	if !ok {
		return "", false
	}
	return txt.Value, true
}

func (t *Tag) Pictures() []frame.Picture {
	var out []frame.Picture
	for _, f := range t.Frames {
		if pic, ok := f.Attribute.(frame.Picture); ok {
			out = append(out, pic)
		}
	}
	return out
}

// KindCounts tallies decoded frames by kind.
func (t *Tag) KindCounts() map[frame.Kind]int {
	counts := make(map[frame.Kind]int, 3)
	for _, f := range t.Frames {
		counts[f.Attribute.Kind()]++
	}
	return counts
}
