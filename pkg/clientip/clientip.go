package clientip

import (
	"net"
	"net/http"
	"strings"
)

// GetIP returns the originating client address of an HTTP request.
// The platform edge proxy terminates TLS and forwards the original
// address, so headers take priority over the TCP peer:
//
//  1. X-Real-IP       - set by the edge proxy
//  2. X-Forwarded-For - comma-separated chain, first valid entry wins
//  3. RemoteAddr      - direct connection fallback
//
// Invalid header values are skipped rather than trusted; an empty
// string is returned only when nothing on the request parses as an IP.
func GetIP(r *http.Request) string {
	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for _, entry := range strings.Split(forwarded, ",") {
			if ip := parseIP(entry); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// No port present, assume RemoteAddr is already a bare IP.
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an address string. Returns an empty
// string when the input is not a valid IP.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
