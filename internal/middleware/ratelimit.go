package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"shopadmin/internal/infrastructure/metrics"
	"shopadmin/internal/web"
)

// Counter counts hits per key in fixed windows.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}

// RateLimit allows limit requests per client IP and route within window.
// When the counter fails the request is let through.
func RateLimit(counter Counter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := r.Method + " " + limitedRoute(r)
			key := fmt.Sprintf("shopadmin:rate_limit:%s:%s", route, clientIP(r))

			count, resetIn, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				web.Logger(r.Context()).Warn("rate limiter unavailable, allowing request", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				metrics.RateLimited.WithLabelValues(route).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(resetIn.Seconds()))))
				web.WriteJSON(w, r, http.StatusTooManyRequests, web.ErrorResponse{
					Error:   "RATE_LIMITED",
					Message: "too many requests, try again later",
					TraceID: web.TraceID(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// limitedRoute keys on the matched pattern so path variants of one route
// share a bucket.
func limitedRoute(r *http.Request) string {
	route := routePattern(r)
	if route == "unmatched" {
		route = r.URL.Path
	}
	if trimmed := strings.TrimRight(route, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MemoryCounter is a process-local Counter used when Redis is not configured.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]memoryWindow
	now     func() time.Time
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{windows: map[string]memoryWindow{}, now: time.Now}
}

func (c *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	w, ok := c.windows[key]
	if !ok || !now.Before(w.resetAt) {
		c.sweep(now)
		w = memoryWindow{resetAt: now.Add(window)}
	}
	w.count++
	c.windows[key] = w

	return w.count, w.resetAt.Sub(now), nil
}

func (c *MemoryCounter) sweep(now time.Time) {
	for k, w := range c.windows {
		if !now.Before(w.resetAt) {
			delete(c.windows, k)
		}
	}
}
