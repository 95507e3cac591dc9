package middleware

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/metrics"
)

func readLogLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLogger_FieldsSurviveInnerWrappers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.log")
	log := logger.New(logger.Config{Level: "info", Format: "json", OutputPath: path})
	t.Cleanup(func() { logger.New(logger.Config{Level: "error"}) })

	handler := RequestID()(Logger(log)(metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AddLogField(r, "tenant_id", 42)
		w.WriteHeader(http.StatusPaymentRequired)
	}))))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", nil)
	req.Header.Set(RequestIDHeader, "req-abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	lines := readLogLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, float64(42), lines[0]["tenant_id"])
	assert.Equal(t, float64(http.StatusPaymentRequired), lines[0]["status"])
	assert.Equal(t, "req-abc", lines[0]["request_id"])
}

func TestAddLogField_OutsideLogger(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotPanics(t, func() { AddLogField(req, "k", "v") })
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"none", "", false},
		{"well formed", "7f1c-req_01.a", true},
		{"injection", "abc\nlevel=error", false},
		{"too long", strings.Repeat("a", maxRequestIDLen+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.NotEqual(t, tt.incoming, seen)
				assert.Len(t, seen, 36)
			}
		})
	}
}

func TestRecovery_HidesPanicValue(t *testing.T) {
	h := Recovery(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("db password is hunter2")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "hunter2")
	assert.Contains(t, rr.Body.String(), "INTERNAL_ERROR")
}

func TestSecurityHeaders(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name       string
		production bool
		path       string
		hsts       bool
		noStore    bool
		swagger    bool
	}{
		{"dev api", false, "/api/v1/jobs", false, false, false},
		{"prod api", true, "/api/v1/jobs", true, false, false},
		{"billing", false, "/api/v1/billing/checkout", false, true, false},
		{"auth", true, "/api/v1/auth/login", true, true, false},
		{"swagger", false, "/swagger/index.html", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SecurityHeaders(tt.production)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			h := rr.Header()
			assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
			assert.Equal(t, tt.hsts, h.Get("Strict-Transport-Security") != "")
			assert.Equal(t, tt.noStore, h.Get("Cache-Control") == "no-store")
			if tt.swagger {
				assert.Equal(t, swaggerCSP, h.Get("Content-Security-Policy"))
			} else {
				assert.Equal(t, apiCSP, h.Get("Content-Security-Policy"))
			}
		})
	}
}

func TestAppCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := AppCORS("https://app.hireloop.io/", "https://www.hireloop.io")(ok)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	for _, origin := range []string{"https://app.hireloop.io", "https://www.hireloop.io"} {
		assert.Equal(t, origin, preflight(origin).Header().Get("Access-Control-Allow-Origin"), origin)
	}
	assert.Empty(t, preflight("http://localhost:5173").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight("https://evil.example.com").Header().Get("Access-Control-Allow-Origin"))
}
