package config

import (
	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/danmuck/id3ctl/internal/render"
)

func (c Config) Limits() id3.Limits {
	return id3.Limits{MaxFrameBytes: c.MaxFrameBytes}
}

// RenderFormat assumes c passed Validate.
func (c Config) RenderFormat() render.Format {
	f, err := render.ParseFormat(c.Format)
	if err != nil {
		return render.FormatText
	}
	return f
}
