package middleware

import (
	"net"
	"net/http"

	"github.com/ekaya-inc/ekaya-bi/pkg/audit"
)

// ClientIP stores the caller's address in the request context for audit entries.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
		next.ServeHTTP(w, r.WithContext(audit.WithClientIP(r.Context(), ip)))
	})
}
