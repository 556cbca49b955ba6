package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/MrEthical07/authflow"
)

// ClientIP stores the caller address for the engine's per-IP throttle. With
// trustForwarded the first X-Forwarded-For entry wins; only enable it behind a
// proxy that overwrites the header.
func ClientIP(trustForwarded bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteIP(r.RemoteAddr)
			if trustForwarded {
				if fwd := forwardedIP(r.Header.Get("X-Forwarded-For")); fwd != "" {
					ip = fwd
				}
			}
			if ip == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(authflow.WithClientIP(r.Context(), ip)))
		})
	}
}

func remoteIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	if net.ParseIP(host) == nil {
		return ""
	}
	return host
}

func forwardedIP(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first = strings.TrimSpace(first)
	if net.ParseIP(first) == nil {
		return ""
	}
	return first
}
