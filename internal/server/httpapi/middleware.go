package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmaia/clipstream/internal/server/auth"
	"github.com/google/uuid"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFromContext returns the authenticated identity injected by the
// authenticate middleware.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*auth.Identity)
	return id, ok
}

// authenticate verifies the Authorization bearer token and injects the
// resolved identity into the request context. Requests without a valid
// token never reach the handler.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, codeUnauthenticated, "authentication required", http.StatusUnauthorized)
			return
		}

		id, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			respondError(w, codeUnauthenticated, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder wraps http.ResponseWriter and remembers the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// routeLabel collapses a request path to the metric label for its RPC
// procedure, e.g. /rpc/auth.signIn -> auth.signIn.
func routeLabel(path string) string {
	return strings.TrimPrefix(path, "/rpc/")
}

// instrument logs every request and feeds the request counters and the
// latency histogram.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		route := routeLabel(r.URL.Path)
		s.metrics.RecordRequest(route, rec.statusCode)
		s.metrics.RecordRequestLatency(route, duration)

		args := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.statusCode,
			"duration_ms", float64(duration.Nanoseconds()) / float64(time.Millisecond),
		}

		switch {
		case rec.statusCode >= 500:
			s.logger.Error(r.Context(), "http request", args...)
		case rec.statusCode >= 400:
			s.logger.Warn(r.Context(), "http request", args...)
		default:
			s.logger.Info(r.Context(), "http request", args...)
		}
	})
}
