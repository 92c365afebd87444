package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/id3ctl/internal/render"
	homedir "github.com/mitchellh/go-homedir"
)

const DefaultPath = "~/.config/id3ctl/config.toml"

type Config struct {
	MaxFrameBytes   uint32
	Format          string
	ExtractPictures string
	MetricsTextfile string
	Server          ServerConfig
}

type ServerConfig struct {
	Addr           string
	MaxUploadBytes int64
	CorsOrigins    []string
	AuthToken      string
}

type fileConfig struct {
	MaxFrameBytes   int64      `toml:"max_frame_bytes"`
	Format          string     `toml:"format"`
	ExtractPictures string     `toml:"extract_pictures"`
	MetricsTextfile string     `toml:"metrics_textfile"`
	Server          fileServer `toml:"server"`
}

type fileServer struct {
	Addr           string   `toml:"addr"`
	MaxUploadBytes int64    `toml:"max_upload_bytes"`
	CorsOrigins    []string `toml:"cors_origins"`
	AuthToken      string   `toml:"auth_token"`
}

func Default() Config {
	return Config{
		MaxFrameBytes: 16 * 1024 * 1024,
		Format:        string(render.FormatText),
		Server: ServerConfig{
			Addr:           ":9300",
			MaxUploadBytes: 32 * 1024 * 1024,
			CorsOrigins:    []string{"http://localhost:3000"},
		},
	}
}

// Resolve loads path when given. Otherwise it reads DefaultPath if that
// file exists and falls back to Default.
func Resolve(path string) (Config, error) {
	if strings.TrimSpace(path) != "" {
		return Load(path)
	}
	def, err := homedir.Expand(DefaultPath)
	if err != nil {
		return Config{}, fmt.Errorf("config resolve home: %w", err)
	}
	if _, err := os.Stat(def); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(def)
}

// Load overlays the keys defined in path onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("max_frame_bytes") {
		if raw.MaxFrameBytes < 0 || raw.MaxFrameBytes > int64(^uint32(0)) {
			return Config{}, fmt.Errorf("config max_frame_bytes out of range: %d", raw.MaxFrameBytes)
		}
		cfg.MaxFrameBytes = uint32(raw.MaxFrameBytes)
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("extract_pictures") {
		cfg.ExtractPictures = strings.TrimSpace(raw.ExtractPictures)
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}
	if meta.IsDefined("server", "addr") {
		cfg.Server.Addr = strings.TrimSpace(raw.Server.Addr)
	}
	if meta.IsDefined("server", "max_upload_bytes") {
		cfg.Server.MaxUploadBytes = raw.Server.MaxUploadBytes
	}
	if meta.IsDefined("server", "cors_origins") {
		cfg.Server.CorsOrigins = normalizeOrigins(raw.Server.CorsOrigins)
	}
	if meta.IsDefined("server", "auth_token") {
		cfg.Server.AuthToken = strings.TrimSpace(raw.Server.AuthToken)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, err := render.ParseFormat(cfg.Format); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return fmt.Errorf("server addr is required")
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server max_upload_bytes must be positive")
	}
	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
