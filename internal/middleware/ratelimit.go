package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const staleVisitorAfter = 10 * time.Minute

type visitorLimiter struct {
	mu       sync.Mutex
	seen     map[string]*visitorEntry
	rps      rate.Limit
	burst    int
	lastScan time.Time
}

type visitorEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newVisitorLimiter(rps float64, burst int) *visitorLimiter {
	return &visitorLimiter{
		seen:     make(map[string]*visitorEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
		lastScan: time.Now(),
	}
}

// allow checks the per-IP token bucket, creating one on first sight. Stale
// entries are evicted opportunistically while the lock is already held.
func (vl *visitorLimiter) allow(ip string) bool {
	vl.mu.Lock()
	defer vl.mu.Unlock()

	now := time.Now()
	if now.Sub(vl.lastScan) > staleVisitorAfter {
		for key, entry := range vl.seen {
			if now.Sub(entry.lastSeen) > staleVisitorAfter {
				delete(vl.seen, key)
			}
		}
		vl.lastScan = now
	}

	entry, ok := vl.seen[ip]
	if !ok {
		entry = &visitorEntry{limiter: rate.NewLimiter(vl.rps, vl.burst)}
		vl.seen[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.Allow()
}

// RateLimit returns middleware that limits requests per client IP. rps is
// the sustained requests per second, burst the maximum burst size.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := newVisitorLimiter(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.allow(ip) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"message": "Too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
