package server

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sarandavies/london-house-buying/internal/metrics"
)

// statusRecorder captures the status code a handler writes so the request
// log can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument tags every request with a UUID, echoes it in X-Request-Id,
// observes the request duration, and logs the outcome.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)
		elapsed := time.Since(start)

		metrics.RequestDuration.WithLabelValues(r.URL.Path).Observe(elapsed.Seconds())
		s.logger.Info("handled request",
			zap.String("op", "server.instrument"),
			zap.String("requestId", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", elapsed),
		)
	})
}

// rateLimit rejects clients that exhausted their token bucket. The client
// key is the remote IP; requests without a parseable host:port fall back to
// the raw remote address.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			client = r.RemoteAddr
		}

		if !s.limiter.Allow(client) {
			metrics.RateLimited.Inc()
			s.logger.Warn("rate limit exceeded",
				zap.String("op", "server.rateLimit"),
				zap.String("client", client),
			)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
