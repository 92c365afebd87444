// Package server exposes the tag decoder over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/id3ctl/internal/auth"
	"github.com/danmuck/id3ctl/internal/config"
	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/danmuck/id3ctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	Name    = "id3d"
	Version = "0.1.0"
)

type Server struct {
	addr      string
	maxUpload int64
	started   time.Time
	decoder   *id3.Decoder
	auth      auth.Validator
	router    *gin.Engine
	log       zerolog.Logger
}

type Option func(*Server)

// WithValidator guards the upload route with v. It takes precedence over
// ServerConfig.AuthToken.
func WithValidator(v auth.Validator) Option {
	return func(s *Server) { s.auth = v }
}

func New(cfg config.ServerConfig, decoder *id3.Decoder, logger zerolog.Logger, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestObserver(Name, logger))
	if len(cfg.CorsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CorsOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	s := &Server{
		addr:      cfg.Addr,
		maxUpload: cfg.MaxUploadBytes,
		started:   time.Now(),
		decoder:   decoder,
		router:    r,
		log:       logger,
	}
	if cfg.AuthToken != "" {
		s.auth = auth.StaticToken{Token: cfg.AuthToken}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
