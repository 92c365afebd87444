package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/id3ctl/internal/config"
	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/danmuck/id3ctl/internal/logging"
	"github.com/danmuck/id3ctl/internal/observability"
	"github.com/danmuck/id3ctl/internal/server"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "config path (defaults to "+config.DefaultPath+" when present)")
	addr := flag.String("addr", "", "listen address override")
	flag.Parse()

	logging.ConfigureRuntime()
	logger := observability.InitLogger(server.Name)

	cfg, err := loadConfig(*configPath, *addr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dec := id3.NewDecoder(id3.WithLogger(logger), id3.WithLimits(cfg.Limits()))
	if err := server.New(cfg.Server, dec, logger).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

// loadConfig resolves path and applies the -addr override. The result is
// validated after the override.
func loadConfig(path, addr string) (config.Config, error) {
	cfg, err := config.Resolve(path)
	if err != nil {
		return config.Config{}, err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
