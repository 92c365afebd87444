package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/danmuck/id3ctl/internal/config"
	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/danmuck/id3ctl/internal/mapfile"
	"github.com/danmuck/id3ctl/internal/observability"
	"github.com/danmuck/id3ctl/internal/render"
	"github.com/rs/zerolog"
)

// run decodes and prints every file and returns how many failed.
func run(w io.Writer, cfg config.Config, files []string, logger zerolog.Logger) int {
	dec := id3.NewDecoder(id3.WithLogger(logger), id3.WithLimits(cfg.Limits()))
	format := cfg.RenderFormat()

	failed := 0
	for _, name := range files {
		if err := inspect(w, dec, cfg, format, name, logger); err != nil {
			logger.Error().Err(err).Str("file", name).Str("class", id3.Classify(err).String()).Msg("decode failed")
			failed++
		}
	}

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error().Err(err).Str("path", cfg.MetricsTextfile).Msg("metrics textfile")
			failed++
		}
	}
	return failed
}

func inspect(w io.Writer, dec *id3.Decoder, cfg config.Config, format render.Format, name string, logger zerolog.Logger) error {
	m, err := mapfile.Open(name)
	if err != nil {
		return err
	}
	defer m.Close()

	tag, err := dec.Decode(m.Bytes())
	observability.RecordDecode(tag, err)
	if err != nil {
		return err
	}

	if err := render.Write(w, name, tag, format); err != nil {
		return err
	}

	if cfg.ExtractPictures != "" {
		paths, err := extractPictures(cfg.ExtractPictures, name, tag)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logger.Info().Str("file", name).Str("path", p).Msg("picture extracted")
		}
	}
	return nil
}

// extractPictures writes each APIC image to dir as <base>-<n><ext>.
func extractPictures(dir, source string, tag *id3.Tag) ([]string, error) {
	pics := tag.Pictures()
	if len(pics) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("extract pictures: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	paths := make([]string, 0, len(pics))
	for i, pic := range pics {
		path := filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, i+1, pic.Ext()))
		if err := os.WriteFile(path, pic.Data, 0o644); err != nil {
			return paths, fmt.Errorf("extract pictures: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
