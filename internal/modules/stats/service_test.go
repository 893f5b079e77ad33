package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tracknest/core/internal/models"
)

func TestAssembleOverview(t *testing.T) {
	t.Parallel()

	hour := time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)

	summaries := []models.EventSummaryModel{
		{
			Date:            hour,
			EventTypeCounts: models.CounterMap{"page_view": 3, "click": 1},
			TopPages:        models.CounterMap{"/home": 2, "/about": 1},
			Referrers:       models.CounterMap{"direct": 3},
			Sessions:        2,
		},
		{
			Date:            hour.Add(time.Hour),
			EventTypeCounts: models.CounterMap{"page_view": 1},
			TopPages:        models.CounterMap{"/home": 1},
			Referrers:       models.CounterMap{"https://google.com": 1},
			Sessions:        1,
		},
	}
	live := []models.EventModel{
		{EventType: "page_view", URL: "/pricing", Referrer: "", SessionID: "s9"},
		{EventType: "signup", URL: "/pricing", Referrer: "", SessionID: "s9"},
	}

	out := assembleOverview(summaries, live)

	t.Run("event type counts merge summaries and live", func(t *testing.T) {
		require.Equal(t, map[string]int64{
			"page_view": 5,
			"click":     1,
			"signup":    1,
		}, out.EventTypeCounts)
	})

	t.Run("sessions sum buckets plus the live distinct set", func(t *testing.T) {
		require.Equal(t, int64(4), out.UniqueSessions)
	})

	t.Run("top pages rank across both halves", func(t *testing.T) {
		require.Equal(t, []PageCount{
			{URL: "/home", Count: 3},
			{URL: "/about", Count: 1},
			{URL: "/pricing", Count: 1},
		}, out.TopPages)
	})

	t.Run("live page views without a referrer count as direct", func(t *testing.T) {
		require.Equal(t, []ReferrerCount{
			{Referrer: "direct", Count: 4},
			{Referrer: "https://google.com", Count: 1},
		}, out.TopReferrers)
	})
}

func TestAssembleOverviewEmpty(t *testing.T) {
	t.Parallel()

	out := assembleOverview(nil, nil)
	require.Empty(t, out.EventTypeCounts)
	require.Zero(t, out.UniqueSessions)
	require.Empty(t, out.TopPages)
	require.Empty(t, out.TopReferrers)
}

func TestAssembleOverviewTruncatesToFive(t *testing.T) {
	t.Parallel()

	live := []models.EventModel{
		{EventType: "page_view", URL: "/a", SessionID: "s1"},
		{EventType: "page_view", URL: "/b", SessionID: "s1"},
		{EventType: "page_view", URL: "/c", SessionID: "s1"},
		{EventType: "page_view", URL: "/d", SessionID: "s1"},
		{EventType: "page_view", URL: "/e", SessionID: "s1"},
		{EventType: "page_view", URL: "/f", SessionID: "s1"},
	}

	out := assembleOverview(nil, live)
	require.Len(t, out.TopPages, 5)
}
