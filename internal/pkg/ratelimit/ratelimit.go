// Package ratelimit throttles state-changing requests per authenticated user.
package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"rewear/internal/models"
	"rewear/internal/pkg/auth"

	"golang.org/x/time/rate"
)

// maxTrackedKeys bounds the number of limiters kept in memory before the table is reset.
const maxTrackedKeys = 10000

// Limiter keeps one token bucket per user (or per remote address for anonymous requests).
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New returns a Limiter allowing requestsPerSecond on average with the given burst.
// A non-positive rate returns nil, which disables limiting.
func New(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxTrackedKeys {
			l.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

// Middleware rejects POST, PUT, PATCH and DELETE requests above the limit with 429.
// Reads are never limited. It must be mounted after auth.CheckJWTMiddleware to key on the user.
func (l *Limiter) Middleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		if l == nil {
			return h
		}
		fn := func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				h.ServeHTTP(w, r)
				return
			}

			key := r.RemoteAddr
			if userID, ok := auth.UserID(r.Context()); ok {
				key = "user:" + strconv.Itoa(int(userID))
			}

			if !l.get(key).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.ErrorResponse{Errors: "too many requests"})
				return
			}
			h.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
