package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	call := func(path, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, call("/api/v1/jobs", "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, call("/api/v1/jobs", "10.0.0.1:2222").Code, "same host, other port")

	rr := call("/api/v1/jobs", "10.0.0.1:3333")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	secs, err := strconv.Atoi(rr.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, secs, 1)

	assert.Equal(t, http.StatusOK, call("/api/v1/jobs", "10.0.0.2:1111").Code, "other client has its own bucket")

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, call("/api/v1/billing/webhook", "10.0.0.1:4444").Code, "webhook is never throttled")
	}

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("/api/v1/jobs", "10.0.0.1:5555").Code, "token refilled")
}

func TestRateLimiter_CleanupEvictsIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.reserve("a")
	now = now.Add(limiterIdleTTL / 2)
	rl.reserve("b")

	now = now.Add(limiterIdleTTL/2 + time.Second)
	rl.Cleanup()

	assert.Equal(t, 1, rl.Len())
	_, tracked := rl.limiters["b"]
	assert.True(t, tracked)
}
