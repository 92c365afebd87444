package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Gin context keys a handler sets to describe the tag it decoded.
const (
	KeyUploadBytes = "id3.upload_bytes"
	KeyDecodeClass = "id3.decode_class"
	KeyFrames      = "id3.frames"
	KeySkipped     = "id3.skipped"
)

// RequestObserver logs each request with its decode outcome and records
// the request in the HTTP metrics under node.
func RequestObserver(node string, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		RecordHTTPRequest(node, c.Request.Method, path, status, elapsed)

		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}
		event = event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", elapsed)

		if class, ok := c.Get(KeyDecodeClass); ok {
			event = event.
				Interface("class", class).
				Int64("upload_bytes", c.GetInt64(KeyUploadBytes)).
				Int("frames", c.GetInt(KeyFrames)).
				Int("skipped", c.GetInt(KeySkipped))
		}
		event.Msg("http_request")
	}
}
