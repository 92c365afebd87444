package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/danmuck/id3ctl/internal/auth"
	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/danmuck/id3ctl/internal/observability"
	"github.com/danmuck/id3ctl/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	observability.RegisterMetrics()

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": Name,
			"version": Version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	if s.auth != nil {
		v1.Use(requireToken(s.auth))
	}
	v1.POST("/tags", s.decodeTag)
}

func requireToken(v auth.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok || v.Validate(token) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}

// decodeTag decodes the request body as the leading bytes of an audio
// file. ?name= is echoed back as the file name.
func (s *Server) decodeTag(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds max_upload_bytes"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := s.decoder.Decode(data)
	observability.RecordDecode(tag, err)
	c.Set(observability.KeyUploadBytes, int64(len(data)))
	c.Set(observability.KeyDecodeClass, id3.Classify(err).String())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"class": id3.Classify(err).String(),
		})
		return
	}

	c.Set(observability.KeyFrames, len(tag.Frames))
	c.Set(observability.KeySkipped, len(tag.Skipped))
	c.JSON(http.StatusOK, render.View(c.Query("name"), tag))
}
