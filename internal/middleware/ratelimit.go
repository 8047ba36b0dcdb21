package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// maxLimiterClients caps the per-client state so a crawl over many source
	// addresses cannot exhaust memory through the limiter itself.
	maxLimiterClients = 8192
	limiterIdleTTL    = 3 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry holds one token bucket per client key, bounded in size.
// Idle entries are evicted when the cap is reached; a full registry drops the
// stalest entry so new clients always get a bucket.
type limiterRegistry struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	max     int
	idleTTL time.Duration
	entries map[string]*limiterEntry
	now     func() time.Time
}

func newLimiterRegistry(rps rate.Limit, burst int) *limiterRegistry {
	return &limiterRegistry{
		rps:     rps,
		burst:   burst,
		max:     maxLimiterClients,
		idleTTL: limiterIdleTTL,
		entries: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

func (reg *limiterRegistry) get(key string) *rate.Limiter {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	if e, ok := reg.entries[key]; ok {
		e.lastSeen = now
		return e.limiter
	}
	if len(reg.entries) >= reg.max {
		reg.evict(now)
	}
	e := &limiterEntry{limiter: rate.NewLimiter(reg.rps, reg.burst), lastSeen: now}
	reg.entries[key] = e
	return e.limiter
}

// evict drops idle entries, then the single stalest one if the registry is
// still full. Callers hold the mutex.
func (reg *limiterRegistry) evict(now time.Time) {
	for key, e := range reg.entries {
		if now.Sub(e.lastSeen) > reg.idleTTL {
			delete(reg.entries, key)
		}
	}
	if len(reg.entries) < reg.max {
		return
	}
	var stalestKey string
	var stalest time.Time
	for key, e := range reg.entries {
		if stalestKey == "" || e.lastSeen.Before(stalest) {
			stalestKey = key
			stalest = e.lastSeen
		}
	}
	delete(reg.entries, stalestKey)
}

// RateLimit applies a per-client token bucket. It guards the public legacy
// path, which is the only unauthenticated data endpoint, against token
// guessing.
func RateLimit(rps rate.Limit, burst int) func(http.Handler) http.Handler {
	reg := newLimiterRegistry(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !reg.get(host).Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
