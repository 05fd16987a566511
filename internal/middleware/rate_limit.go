package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// AuthRateLimitPerMinute bounds login and code-verification attempts per
// client IP. Low on purpose: six-digit codes must not be brute-forceable
// inside their ten-minute window.
const AuthRateLimitPerMinute = 5

// RateLimitByIP limits requests per client IP over a one-minute window
func RateLimitByIP(requestsPerMinute int) func(next http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate_limit_exceeded","message":"Too many requests"}`))
		}),
	)
}
