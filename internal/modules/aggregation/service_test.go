package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tracknest/core/internal/models"
)

func TestRollupWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 15, 42, 0, 0, time.UTC)
	hour := now.Truncate(time.Hour)

	t.Run("folds everything between the mark and the current hour", func(t *testing.T) {
		t.Parallel()
		start, end, ok := rollupWindow(hour.Add(-3*time.Hour), now)
		require.True(t, ok)
		require.Equal(t, hour.Add(-3*time.Hour), start)
		require.Equal(t, hour, end)
	})

	t.Run("mark at the current hour means nothing to do", func(t *testing.T) {
		t.Parallel()
		_, _, ok := rollupWindow(hour, now)
		require.False(t, ok)
	})

	t.Run("mark ahead of the clock means nothing to do", func(t *testing.T) {
		t.Parallel()
		_, _, ok := rollupWindow(hour.Add(time.Hour), now)
		require.False(t, ok)
	})

	t.Run("never includes the partially filled current hour", func(t *testing.T) {
		t.Parallel()
		_, end, ok := rollupWindow(hour.Add(-time.Hour), now)
		require.True(t, ok)
		require.True(t, end.Before(now))
		require.Equal(t, hour, end)
	})
}

func TestMergeCounts(t *testing.T) {
	t.Parallel()

	t.Run("increments existing keys, never overwrites", func(t *testing.T) {
		t.Parallel()
		existing := models.CounterMap{"page_view": 4, "click": 1}
		got := mergeCounts(existing, map[string]int64{"page_view": 2, "signup": 3})

		require.Equal(t, models.CounterMap{"page_view": 6, "click": 1, "signup": 3}, got)
	})

	t.Run("nil existing map becomes the delta", func(t *testing.T) {
		t.Parallel()
		got := mergeCounts(nil, map[string]int64{"/home": 2})
		require.Equal(t, models.CounterMap{"/home": 2}, got)
	})

	t.Run("empty delta leaves the row untouched", func(t *testing.T) {
		t.Parallel()
		got := mergeCounts(models.CounterMap{"direct": 5}, nil)
		require.Equal(t, models.CounterMap{"direct": 5}, got)
	})

	t.Run("keys absent from the delta keep their counts", func(t *testing.T) {
		t.Parallel()
		got := mergeCounts(models.CounterMap{"/a": 1, "/b": 2}, map[string]int64{"/b": 1})
		require.Equal(t, models.CounterMap{"/a": 1, "/b": 3}, got)
	})
}

// A re-run over an already-merged window must add the same deltas again only
// if the high-water mark failed to advance; the merge itself is plain
// addition, so applying a window twice doubles it. This pins down that
// mergeCounts carries no hidden dedup — idempotence lives entirely in the
// high-water mark compare-and-set in Run.
func TestMergeCountsIsPlainAddition(t *testing.T) {
	t.Parallel()

	window := map[string]int64{"page_view": 3}
	once := mergeCounts(models.CounterMap{}, window)
	require.Equal(t, models.CounterMap{"page_view": 3}, once)

	twice := mergeCounts(once, window)
	require.Equal(t, models.CounterMap{"page_view": 6}, twice)
}
