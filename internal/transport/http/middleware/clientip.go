package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the originating client address. Behind a reverse proxy
// the first X-Forwarded-For entry wins; otherwise the connection's remote
// address is used.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
