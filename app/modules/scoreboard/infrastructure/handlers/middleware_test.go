package scoreboardhandlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireEditKey(t *testing.T) {
	tests := []struct {
		name       string
		editKey    string
		url        string
		header     string
		wantStatus int
	}{
		{name: "no key configured allows writes", editKey: "", url: "/api/score", wantStatus: http.StatusOK},
		{name: "missing key", editKey: "secret", url: "/api/score", wantStatus: http.StatusForbidden},
		{name: "wrong key", editKey: "secret", url: "/api/score?key=nope", wantStatus: http.StatusForbidden},
		{name: "query key", editKey: "secret", url: "/api/score?key=secret", wantStatus: http.StatusOK},
		{name: "header key", editKey: "secret", url: "/api/score", header: "secret", wantStatus: http.StatusOK},
		{name: "query wins over header", editKey: "secret", url: "/api/score?key=nope", header: "secret", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("x-edit-key", tt.header)
			}
			rec := httptest.NewRecorder()
			RequireEditKey(tt.editKey)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"ok":false,"error":"Invalid edit key"}`, rec.Body.String())
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	h := RateLimitMiddleware(limiter)(okHandler())

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/score", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"), "other addresses have their own bucket")
}

func TestIPRateLimiter_Prunes(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	first := limiter.GetLimiter("10.0.0.1")
	assert.Same(t, first, limiter.GetLimiter("10.0.0.1"))
	assert.NotSame(t, first, limiter.GetLimiter("10.0.0.2"))
}

func TestCORSMiddleware(t *testing.T) {
	h := CORSMiddleware([]string{"https://scores.example"})(okHandler())

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/scores", nil)
		req.Header.Set("Origin", "https://scores.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "https://scores.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), EditKeyHeader)
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/score", nil)
		req.Header.Set("Origin", "https://scores.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/scores", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "hi")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	line := buf.String()
	assert.True(t, strings.Contains(line, "status=418"), line)
	assert.True(t, strings.Contains(line, "path=/api/scores"), line)
	assert.True(t, strings.Contains(line, "remote_ip=192.0.2.1"), line)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.RemoteAddr = "203.0.113.10"
	assert.Equal(t, "203.0.113.10", clientIP(req))
}
