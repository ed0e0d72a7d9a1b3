package middleware

import (
	"net"
	"net/http"

	"github.com/jeylanithiam/ResumeMash/internal/storage/redis"

	"go.uber.org/zap"
)

const (
	MaxRequestsPerMinute = 120
)

// RateLimit caps requests per client address per minute, counted in Redis.
// When Redis is unreachable the request passes through; the limiter is a
// guard rail, not an availability dependency.
func RateLimit(cache *redis.Cache, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				client = r.RemoteAddr
			}

			count, err := cache.IncrementClientRateLimit(r.Context(), client)
			if err != nil {
				logger.Error("failed to check rate limit",
					zap.String("client", client),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if count > MaxRequestsPerMinute {
				logger.Warn("rate limit exceeded",
					zap.String("client", client),
					zap.Int64("count", count),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded, please wait a minute"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
