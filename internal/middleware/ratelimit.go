package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// cleanupEvery is how many requests pass between sweeps of idle limiters.
const cleanupEvery = 1000

// limiterSet hands out one token bucket per client address.
type limiterSet struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	seen     int
}

func newLimiterSet(rps float64, burst int) *limiterSet {
	return &limiterSet{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (s *limiterSet) get(client string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[client]
	if !ok {
		l = rate.NewLimiter(s.rps, s.burst)
		s.limiters[client] = l
	}

	s.seen++
	if s.seen%cleanupEvery == 0 {
		// a full bucket means the client has been idle
		for c, other := range s.limiters {
			if c != client && other.Tokens() >= float64(s.burst) {
				delete(s.limiters, c)
			}
		}
	}
	return l
}

// RateLimit answers 429 once a client exceeds rps requests per second with
// the given burst. rps <= 0 disables limiting; burst <= 0 defaults to rps.
//
// The client is identified by RemoteAddr, so mount chi's RealIP first when
// running behind a proxy.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		if burst <= 0 {
			burst = max(int(rps), 1)
		}
		set := newLimiterSet(rps, burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !set.get(clientAddr(r)).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "rate_limited",
					"message": "Too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
