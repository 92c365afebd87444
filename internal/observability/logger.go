package observability

import (
	"github.com/danmuck/id3ctl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger tags the process logger with the application name.
func InitLogger(app string) zerolog.Logger {
	logger := logging.Logger().With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
