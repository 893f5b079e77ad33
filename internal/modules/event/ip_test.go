package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ipv4 mapped ipv6", "::ffff:203.0.113.7", "203.0.113.7"},
		{"ipv6 loopback", "::1", "127.0.0.1"},
		{"plain ipv4", "198.51.100.1", "198.51.100.1"},
		{"plain ipv6", "2001:db8::1", "2001:db8::1"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, NormalizeIP(tc.in))
		})
	}
}
