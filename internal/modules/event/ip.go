package event

import "strings"

// NormalizeIP canonicalizes client addresses before storage: IPv4-mapped
// IPv6 forms lose their "::ffff:" prefix and the IPv6 loopback becomes its
// IPv4 spelling, so the same visitor never shows up under two addresses.
func NormalizeIP(ip string) string {
	if strings.HasPrefix(ip, "::ffff:") {
		return strings.TrimPrefix(ip, "::ffff:")
	}
	if ip == "::1" {
		return "127.0.0.1"
	}
	return ip
}
