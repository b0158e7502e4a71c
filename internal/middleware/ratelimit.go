package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"harvest-keeper/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
	// ExemptPaths are served without counting, e.g. health probes
	ExemptPaths []string
}

// RateLimiter is a fixed-window counter per client IP kept in Redis
type RateLimiter struct {
	client *redis.Client
	config RateLimitConfig
	exempt map[string]struct{}
	logger *zap.Logger
}

type quota struct {
	used  int64
	reset time.Duration
}

func NewRateLimiter(client *redis.Client, config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	exempt := make(map[string]struct{}, len(config.ExemptPaths))
	for _, p := range config.ExemptPaths {
		exempt[p] = struct{}{}
	}
	return &RateLimiter{client: client, config: config, exempt: exempt, logger: logger}
}

// RateLimitMiddleware wraps NewRateLimiter for router.Use
func RateLimitMiddleware(client *redis.Client, config RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return NewRateLimiter(client, config, logger).Middleware
}

// take counts one request for clientIP. The window starts with the first
// request, so INCR and PTTL travel together and the expiry is set only once.
func (l *RateLimiter) take(ctx context.Context, clientIP string) (quota, error) {
	key := l.config.KeyPrefix + ":" + clientIP

	var incr *redis.IntCmd
	var pttl *redis.DurationCmd
	if _, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pttl = pipe.PTTL(ctx, key)
		return nil
	}); err != nil {
		return quota{}, err
	}

	reset := pttl.Val()
	if reset <= 0 {
		if err := l.client.PExpire(ctx, key, l.config.Window).Err(); err != nil {
			return quota{}, err
		}
		reset = l.config.Window
	}
	return quota{used: incr.Val(), reset: reset}, nil
}

// Middleware lets requests through when Redis is unavailable
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	limit := l.config.RequestsPerWindow

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := l.exempt[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := clientAddr(r)
		q, err := l.take(r.Context(), clientIP)
		if err != nil {
			l.logger.Error("Rate limiter unavailable", zap.Error(err), zap.String("client_ip", clientIP))
			next.ServeHTTP(w, r)
			return
		}

		remaining := int64(limit) - q.used
		if remaining < 0 {
			remaining = 0
		}
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(q.reset).Unix(), 10))

		if q.used > int64(limit) {
			metrics.RateLimited.Inc()
			l.logger.Warn("Rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("path", r.URL.Path),
				zap.Int64("count", q.used),
			)
			retryAfter := retryAfterSeconds(q.reset)
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			RespondWithErrorDetails(w, http.StatusTooManyRequests, "rate limit exceeded", map[string]interface{}{
				"limit":               limit,
				"retry_after_seconds": retryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr drops the port so every connection from one host shares a window
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		return 1
	}
	return s
}
