package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
)

type logFieldsKey struct{}

// logFields collects per-request fields set by inner middleware and handlers
type logFields struct {
	mu     sync.Mutex
	values map[string]interface{}
}

// statusRecorder captures the status code and body size of a response
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// AddLogField attaches a field to the request log line. It is a no-op
// outside the Logger middleware.
func AddLogField(r *http.Request, key string, value interface{}) {
	lf, ok := r.Context().Value(logFieldsKey{}).(*logFields)
	if !ok {
		return
	}
	lf.mu.Lock()
	lf.values[key] = value
	lf.mu.Unlock()
}

// health checks and scrapes log at debug level
var quietPaths = map[string]bool{
	"/health":  true,
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// Logger returns a middleware that writes one log line per request.
// 5xx responses log at error level and 4xx at warn.
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			lf := &logFields{values: make(map[string]interface{})}
			r = r.WithContext(context.WithValue(r.Context(), logFieldsKey{}, lf))
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
				"bytes":       rec.written,
				"ip":          r.RemoteAddr,
				"request_id":  GetRequestID(r),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				fields["route"] = rctx.RoutePattern()
			}
			lf.mu.Lock()
			for k, v := range lf.values {
				fields[k] = v
			}
			lf.mu.Unlock()

			entry := log.WithFields(fields)
			switch {
			case rec.statusCode >= http.StatusInternalServerError:
				entry.Error("HTTP request")
			case rec.statusCode >= http.StatusBadRequest:
				entry.Warn("HTTP request")
			case quietPaths[r.URL.Path]:
				entry.Debug("HTTP request")
			default:
				entry.Info("HTTP request")
			}
		})
	}
}
