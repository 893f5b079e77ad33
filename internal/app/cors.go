package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether an Origin header value matches one of the
// configured patterns. Patterns match the host[:port] part of the origin:
// "*.example.com" matches any subdomain, "localhost:*" matches any port,
// anything else must match exactly.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}

	for _, pattern := range patterns {
		switch {
		case pattern == host:
			return true
		case strings.HasPrefix(pattern, "*."):
			if strings.HasSuffix(host, pattern[1:]) {
				return true
			}
		case strings.HasSuffix(pattern, ":*"):
			if strings.HasPrefix(host, pattern[:len(pattern)-1]) {
				return true
			}
		}
	}
	return false
}
