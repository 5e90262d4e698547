package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout caps handler execution time.
const DefaultRequestTimeout = 30 * time.Second

// Timeout bounds how long a handler may run. Requests see the deadline on
// their context; responses that miss it get a plain 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		d = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		bounded := http.TimeoutHandler(next, d, "Request Timeout")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			bounded.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
