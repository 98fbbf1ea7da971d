package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "https://kassaklap.nl",
			allowedOrigins: []string{"https://kassaklap.nl"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "https://preview-abc.kassaklap.workers.dev",
			allowedOrigins: []string{"https://preview-*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"https://kassaklap.nl", "http://localhost:5173"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.example",
			allowedOrigins: []string{"https://kassaklap.nl"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"https://kassaklap.nl"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "https://kassaklap.nl",
			allowedOrigins: []string{},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func newMiddlewareTestRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestOriginMiddleware(t *testing.T) {
	allowed := []string{"https://kassaklap.nl"}

	t.Run("production rejects unknown origin", func(t *testing.T) {
		router := newMiddlewareTestRouter(OriginMiddleware(allowed, "production"))

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("development allows any origin", func(t *testing.T) {
		router := newMiddlewareTestRouter(OriginMiddleware(allowed, "development"))

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://anything.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://anything.example" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})

	t.Run("preflight is answered without hitting the handler", func(t *testing.T) {
		router := newMiddlewareTestRouter(OriginMiddleware(allowed, "production"))
		router.OPTIONS("/ping", func(c *gin.Context) {
			t.Error("preflight should not reach the handler")
		})

		req, _ := http.NewRequest("OPTIONS", "/ping", nil)
		req.Header.Set("Origin", "https://kassaklap.nl")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		router := newMiddlewareTestRouter(RequestIDMiddleware())

		req, _ := http.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Header().Get("X-Request-ID") == "" {
			t.Error("expected a generated X-Request-ID header")
		}
	})

	t.Run("keeps a client-provided id", func(t *testing.T) {
		router := newMiddlewareTestRouter(RequestIDMiddleware())

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", "client-id-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "client-id-1" {
			t.Errorf("X-Request-ID = %q, want client-id-1", got)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	router := newMiddlewareTestRouter(RateLimitMiddleware(1, 2))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two statuses = %v, want burst of 2 to pass", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third status = %d, want %d", statuses[2], http.StatusTooManyRequests)
	}
}

func TestLoggerMiddlewarePassesThrough(t *testing.T) {
	router := newMiddlewareTestRouter(LoggerMiddleware(zerolog.Nop()))

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Errorf("got %d %q, want 200 pong", w.Code, w.Body.String())
	}
}
