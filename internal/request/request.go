// Package request has small helpers for reading HTTP request metadata.
package request

import (
	"net/http"
	"strings"
)

// ClientIP returns the best guess at the caller's address. Proxy headers
// win over RemoteAddr; the first X-Forwarded-For entry is the origin.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}
