package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterMapScan(t *testing.T) {
	t.Parallel()

	t.Run("reads a stored counter column", func(t *testing.T) {
		t.Parallel()
		var m CounterMap
		require.NoError(t, m.Scan([]byte(`{"page_view": 4, "click": 1}`)))
		require.Equal(t, CounterMap{"page_view": 4, "click": 1}, m)
	})

	t.Run("nil and empty columns become empty maps", func(t *testing.T) {
		t.Parallel()
		var m CounterMap
		require.NoError(t, m.Scan(nil))
		require.Empty(t, m)

		require.NoError(t, m.Scan("null"))
		require.Empty(t, m)
	})

	t.Run("rejects non-integer values", func(t *testing.T) {
		t.Parallel()
		var m CounterMap
		require.Error(t, m.Scan(`{"page_view": "four"}`))
		require.Error(t, m.Scan(`{"page_view": 1.5}`))
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()
		var m CounterMap
		require.Error(t, m.Scan(`not json`))
	})
}

func TestCounterMapValue(t *testing.T) {
	t.Parallel()

	t.Run("nil map stores an empty object", func(t *testing.T) {
		t.Parallel()
		var m CounterMap
		v, err := m.Value()
		require.NoError(t, err)
		require.Equal(t, "{}", v)
	})

	t.Run("round trips through Scan", func(t *testing.T) {
		t.Parallel()
		in := CounterMap{"/home": 3, "/about": 1}
		v, err := in.Value()
		require.NoError(t, err)

		var out CounterMap
		require.NoError(t, out.Scan(v))
		require.Equal(t, in, out)
	})
}
