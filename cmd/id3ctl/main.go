package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/id3ctl/internal/config"
	"github.com/danmuck/id3ctl/internal/logging"
	"github.com/danmuck/id3ctl/internal/observability"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "config path (defaults to "+config.DefaultPath+" when present)")
	format := flag.String("format", "", "output format: text|json")
	extract := flag.String("extract", "", "directory to write embedded pictures to")
	textfile := flag.String("metrics-textfile", "", "write decode metrics to this node-exporter textfile")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: id3ctl [flags] file...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logging.ConfigureRuntime()
	observability.InitLogger("id3ctl")

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *extract != "" {
		cfg.ExtractPictures = *extract
	}
	if *textfile != "" {
		cfg.MetricsTextfile = *textfile
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	if failed := run(os.Stdout, cfg, flag.Args(), log.Logger); failed > 0 {
		os.Exit(1)
	}
}
