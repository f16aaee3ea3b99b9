package domaincheck

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/pratoflow/tenantcore/pkg/clientip"
)

// ipLimiter hands out one token bucket per client IP. The admission
// endpoint is reachable without authentication, so it gets its own
// throttle independent of the rest of the API.
type ipLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	maxEntry int
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		buckets:  make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		maxEntry: 10000,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[ip]
	if !ok {
		// Crude memory bound: drop everything when the map grows past
		// the cap. Active clients repopulate on their next request.
		if len(l.buckets) >= l.maxEntry {
			l.buckets = make(map[string]*rate.Limiter)
		}
		bucket = rate.NewLimiter(l.rps, l.burst)
		l.buckets[ip] = bucket
	}
	return bucket.Allow()
}

// RateLimit throttles requests per client IP with token buckets.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := newIPLimiter(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientip.GetIP(r)
			if !limiter.allow(ip) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
