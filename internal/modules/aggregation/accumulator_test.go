package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tracknest/core/internal/models"
)

func TestAccumulator(t *testing.T) {
	t.Parallel()

	t.Run("counts one hour of mixed traffic", func(t *testing.T) {
		t.Parallel()
		acc := NewAccumulator()

		acc.Observe("page_view", "/home", "", "s1")
		acc.Observe("page_view", "/home", "", "s1")
		acc.Observe("page_view", "/about", "", "s2")
		acc.Observe("click", "/home", "", "s1")
		acc.Observe("page_view", "/home", "", "s2")

		require.Equal(t, int64(4), acc.EventTypes.Get("page_view"))
		require.Equal(t, int64(1), acc.EventTypes.Get("click"))
		require.Equal(t, int64(2), acc.SessionCount())
		require.Equal(t, int64(3), acc.PageViews.Get("/home"))
		require.Equal(t, int64(1), acc.PageViews.Get("/about"))
		// Only the 4 page views attribute a referrer; the click does not.
		require.Equal(t, int64(4), acc.Referrers.Get(ReferrerDirect))
		require.Equal(t, 1, acc.Referrers.Len())
	})

	t.Run("labels empty referrers direct, keeps real ones", func(t *testing.T) {
		t.Parallel()
		acc := NewAccumulator()

		acc.Observe("page_view", "/", "", "s1")
		acc.Observe("page_view", "/", "https://google.com", "s1")

		require.Equal(t, int64(1), acc.Referrers.Get(ReferrerDirect))
		require.Equal(t, int64(1), acc.Referrers.Get("https://google.com"))
	})

	t.Run("custom events never touch page or referrer counters", func(t *testing.T) {
		t.Parallel()
		acc := NewAccumulator()

		acc.Observe("signup_click", "/pricing", "https://news.ycombinator.com", "s1")

		require.Equal(t, int64(1), acc.EventTypes.Get("signup_click"))
		require.Equal(t, 0, acc.PageViews.Len())
		require.Equal(t, 0, acc.Referrers.Len())
		require.Equal(t, int64(1), acc.SessionCount())
	})
}

func TestCounterTop(t *testing.T) {
	t.Parallel()

	t.Run("ranks by count descending", func(t *testing.T) {
		t.Parallel()
		c := NewCounter()
		c.Add("/a", 1)
		c.Add("/b", 5)
		c.Add("/c", 3)

		top := c.Top(2)
		require.Len(t, top, 2)
		require.Equal(t, Entry{Key: "/b", Count: 5}, top[0])
		require.Equal(t, Entry{Key: "/c", Count: 3}, top[1])
	})

	t.Run("breaks ties by first-seen order", func(t *testing.T) {
		t.Parallel()
		c := NewCounter()
		c.Add("/late", 2)
		c.Add("/early", 2)
		c.Add("/late", 0)

		top := c.Top(5)
		require.Equal(t, "/late", top[0].Key)
		require.Equal(t, "/early", top[1].Key)
	})

	t.Run("returns everything when n exceeds size", func(t *testing.T) {
		t.Parallel()
		c := NewCounter()
		c.Add("/a", 1)

		require.Len(t, c.Top(5), 1)
	})
}

func TestCounterMerge(t *testing.T) {
	t.Parallel()

	t.Run("MergeMap visits keys in sorted order", func(t *testing.T) {
		t.Parallel()
		c := NewCounter()
		c.MergeMap(map[string]int64{"/z": 1, "/a": 1, "/m": 1})

		top := c.Top(3)
		require.Equal(t, "/a", top[0].Key)
		require.Equal(t, "/m", top[1].Key)
		require.Equal(t, "/z", top[2].Key)
	})

	t.Run("MergeCounter preserves the source insertion order", func(t *testing.T) {
		t.Parallel()
		live := NewCounter()
		live.Add("/second", 1)
		live.Add("/first", 1)

		c := NewCounter()
		c.MergeCounter(live)

		top := c.Top(2)
		require.Equal(t, "/second", top[0].Key)
	})

	t.Run("merging adds to existing counts", func(t *testing.T) {
		t.Parallel()
		c := NewCounter()
		c.Add("/home", 3)
		c.MergeMap(map[string]int64{"/home": 2})

		require.Equal(t, int64(5), c.Get("/home"))
	})
}

func TestBucketOf(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 14, 15, 9, 26, 535000000, time.UTC)
	require.Equal(t, time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC), BucketOf(ts))
	require.Equal(t, BucketOf(ts), BucketOf(ts.Add(50*time.Minute)))
	require.NotEqual(t, BucketOf(ts), BucketOf(ts.Add(51*time.Minute)))
}

func TestGroupEvents(t *testing.T) {
	t.Parallel()

	hour := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	events := []models.EventModel{
		{WebsiteID: "w1", SessionID: "s1", EventType: "page_view", URL: "/home", Timestamp: hour.Add(5 * time.Minute)},
		{WebsiteID: "w1", SessionID: "s2", EventType: "page_view", URL: "/home", Timestamp: hour.Add(10 * time.Minute)},
		{WebsiteID: "w2", SessionID: "s3", EventType: "click", URL: "/buy", Timestamp: hour.Add(15 * time.Minute)},
		{WebsiteID: "w1", SessionID: "s1", EventType: "page_view", URL: "/about", Timestamp: hour.Add(65 * time.Minute)},
	}

	groups := GroupEvents(events)
	require.Len(t, groups, 3)

	// First-occurrence order: (w1, 15h), (w2, 15h), (w1, 16h).
	require.Equal(t, "w1", groups[0].WebsiteID)
	require.Equal(t, hour, groups[0].Bucket)
	require.Equal(t, int64(2), groups[0].Acc.EventTypes.Get("page_view"))
	require.Equal(t, int64(2), groups[0].Acc.SessionCount())

	require.Equal(t, "w2", groups[1].WebsiteID)
	require.Equal(t, int64(1), groups[1].Acc.EventTypes.Get("click"))

	require.Equal(t, "w1", groups[2].WebsiteID)
	require.Equal(t, hour.Add(time.Hour), groups[2].Bucket)
	require.Equal(t, int64(1), groups[2].Acc.PageViews.Get("/about"))
}
