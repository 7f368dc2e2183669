package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmynk/equalsplit/internal/metrics"
)

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

// RateLimiter provides per-client rate limiting with TTL eviction.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rpm      int
	burst    int
	ttl      time.Duration
	stopCh   chan struct{}
	once     sync.Once
	metrics  *metrics.Metrics
}

// NewRateLimiter creates a RateLimiter allowing rpm requests per minute per client
// with the given burst, and starts its cleanup goroutine. m may be nil.
func NewRateLimiter(rpm, burst int, ttl time.Duration, m *metrics.Metrics) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	rl := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rpm:      rpm,
		burst:    burst,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
		metrics:  m,
	}
	go rl.reaper()
	return rl
}

func (l *RateLimiter) reaper() {
	t := time.NewTicker(l.ttl)
	defer t.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case now := <-t.C:
			l.mu.Lock()
			for key, e := range l.limiters {
				if now.Sub(e.last) > l.ttl {
					delete(l.limiters, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *RateLimiter) Stop() { l.once.Do(func() { close(l.stopCh) }) }

func (l *RateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.limiters[key]; ok {
		e.last = time.Now()
		return e.limiter
	}
	lim := rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.rpm)), l.burst)
	l.limiters[key] = &limiterEntry{limiter: lim, last: time.Now()}
	return lim
}

// Allow reports whether a request from the given client should be served.
// A non-positive rpm disables limiting.
func (l *RateLimiter) Allow(key string) bool {
	if l.rpm <= 0 {
		return true
	}
	return l.get(key).Allow()
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !l.Allow(ip) {
			if l.metrics != nil {
				l.metrics.RateLimited.Inc()
			}
			slog.Warn("Rate limit exceeded", "client", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the client IP, preferring the first X-Forwarded-For entry.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
