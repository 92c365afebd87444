package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/id3ctl/internal/auth"
	"github.com/danmuck/id3ctl/internal/config"
	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/danmuck/id3ctl/internal/logging"
	"github.com/danmuck/id3ctl/internal/render"
	"github.com/danmuck/id3ctl/internal/testutil/testlog"
)

func newTestServer(t *testing.T, maxUpload int64) *Server {
	t.Helper()
	testlog.Start(t)
	cfg := config.Default().Server
	cfg.MaxUploadBytes = maxUpload
	return New(cfg, id3.NewDecoder(), logging.Logger())
}

// titleTag is a v2.3 tag holding a single TIT2 frame.
func titleTag(title string) []byte {
	body := append([]byte{0}, title...)
	size := 10 + len(body)
	buf := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, byte(size)}
	buf = append(buf, 'T', 'I', 'T', '2', 0, 0, 0, byte(len(body)), 0, 0)
	return append(buf, body...)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 1024)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body["status"] != "ok" || body["service"] != Name {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestDecodeTagRoute(t *testing.T) {
	s := newTestServer(t, 1024)
	req := httptest.NewRequest(http.MethodPost, "/v1/tags?name=song.mp3", bytes.NewReader(titleTag("Hello")))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var view render.TagView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.File != "song.mp3" || len(view.Frames) != 1 || view.Frames[0].Text != "Hello" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestDecodeTagRouteStructuralError(t *testing.T) {
	s := newTestServer(t, 1024)
	req := httptest.NewRequest(http.MethodPost, "/v1/tags", strings.NewReader("XD3\x03\x00\x00\x00\x00\x00\x00"))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["class"] != "structural" || !strings.Contains(body["error"], "invalid magic") {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestDecodeTagRouteTooLarge(t *testing.T) {
	s := newTestServer(t, 8)
	req := httptest.NewRequest(http.MethodPost, "/v1/tags", bytes.NewReader(titleTag("Hello")))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t, 1024)
	s.Handler().ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/v1/tags", bytes.NewReader(titleTag("Hi"))))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "id3ctl_decode_frames_total") {
		t.Fatalf("decode metrics missing from /metrics")
	}
}

func TestDecodeTagRouteRequiresToken(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default().Server
	cfg.AuthToken = "s3cret"
	s := New(cfg, id3.NewDecoder(), logging.Logger())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid", header: "Bearer s3cret", want: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/tags", bytes.NewReader(titleTag("Hello")))
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health should not require a token, got %d", rr.Code)
	}
}

func TestWithValidatorOverridesConfigToken(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default().Server
	cfg.AuthToken = "from-config"

	var seen []string
	v := auth.FuncValidator(func(token string) error {
		seen = append(seen, token)
		if token != "injected" {
			return auth.ErrUnauthorized
		}
		return nil
	})
	s := New(cfg, id3.NewDecoder(), logging.Logger(), WithValidator(v))

	for token, want := range map[string]int{"from-config": http.StatusUnauthorized, "injected": http.StatusOK} {
		req := httptest.NewRequest(http.MethodPost, "/v1/tags", bytes.NewReader(titleTag("Hello")))
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("token %q: expected %d, got %d", token, want, rr.Code)
		}
	}
	if len(seen) != 2 {
		t.Fatalf("expected the injected validator to see both tokens, got %v", seen)
	}
}
