package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the caller's address, preferring the first entry of
// X-Forwarded-For and stripping the IPv6-mapped IPv4 prefix.
func ClientIP(r *http.Request) string {
	ip := ""
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
	} else if r.RemoteAddr != "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip = host
	}
	if ip == "" {
		return "127.0.0.1"
	}
	return strings.TrimPrefix(ip, "::ffff:")
}

func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
