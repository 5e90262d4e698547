package middleware

import "net/http"

// DefaultMaxRequestSize is 1MB, far above any task payload.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize caps request body size. Oversized declared lengths are
// rejected up front; undeclared bodies are capped by MaxBytesReader so a
// handler read past the limit fails instead of buffering unbounded input.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
