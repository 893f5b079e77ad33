package aggregation

import (
	"sort"
	"time"

	"github.com/tracknest/core/internal/models"
)

// ReferrerDirect is the label used when an event carries no referrer.
const ReferrerDirect = "direct"

// Counter is an insertion-ordered string→count accumulator. Ranking ties are
// broken by first-seen order, so the order keys enter the counter must be
// deterministic; callers merge stored maps with sorted keys and live events
// in timestamp order.
type Counter struct {
	counts map[string]int64
	order  []string
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

// Add increments key by n, remembering first-seen order.
func (c *Counter) Add(key string, n int64) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// Get returns the current count for key.
func (c *Counter) Get(key string) int64 { return c.counts[key] }

// Len returns the number of distinct keys.
func (c *Counter) Len() int { return len(c.order) }

// MergeMap folds a stored counter map in key-wise. Keys are visited in
// sorted order so the resulting first-seen order does not depend on Go map
// iteration.
func (c *Counter) MergeMap(m map[string]int64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.Add(k, m[k])
	}
}

// MergeCounter folds another counter in, preserving its insertion order.
func (c *Counter) MergeCounter(other *Counter) {
	for _, k := range other.order {
		c.Add(k, other.counts[k])
	}
}

// ToMap copies the counter into a plain map.
func (c *Counter) ToMap() map[string]int64 {
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Entry is one ranked counter key.
type Entry struct {
	Key   string
	Count int64
}

// Top returns up to n entries sorted by count descending; equal counts keep
// first-seen order.
func (c *Counter) Top(n int) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		entries = append(entries, Entry{Key: k, Count: c.counts[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Accumulator folds events into the per-bucket counters shared by the rollup
// job and the overview live-window scan, so both paths count identically.
//
// Referrer attribution is page-view scoped: a custom event ("click", ...)
// increments its event-type count but neither the URL nor the referrer maps.
type Accumulator struct {
	EventTypes *Counter
	PageViews  *Counter
	Referrers  *Counter
	sessions   map[string]struct{}
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		EventTypes: NewCounter(),
		PageViews:  NewCounter(),
		Referrers:  NewCounter(),
		sessions:   make(map[string]struct{}),
	}
}

// Observe folds one event in.
func (a *Accumulator) Observe(eventType, url, referrer, sessionID string) {
	a.EventTypes.Add(eventType, 1)
	if eventType == models.EventTypePageView {
		a.PageViews.Add(url, 1)
		if referrer == "" {
			referrer = ReferrerDirect
		}
		a.Referrers.Add(referrer, 1)
	}
	a.sessions[sessionID] = struct{}{}
}

// SessionCount returns the number of distinct sessions observed.
func (a *Accumulator) SessionCount() int64 { return int64(len(a.sessions)) }

// BucketOf maps an event timestamp to its summary bucket: the start of the
// hour the event itself fell into, independent of when the rollup runs.
func BucketOf(ts time.Time) time.Time {
	return ts.Truncate(time.Hour)
}

// Group is the accumulated state for one (website, bucket) pair.
type Group struct {
	WebsiteID string
	Bucket    time.Time
	Acc       *Accumulator
}

// GroupEvents buckets events by (website, hour-of-event-timestamp). Group
// order follows first occurrence, which is deterministic when events arrive
// sorted by timestamp.
func GroupEvents(events []models.EventModel) []*Group {
	index := make(map[string]*Group)
	var groups []*Group
	for _, ev := range events {
		bucket := BucketOf(ev.Timestamp)
		key := ev.WebsiteID + "\x00" + bucket.Format(time.RFC3339)
		g, ok := index[key]
		if !ok {
			g = &Group{WebsiteID: ev.WebsiteID, Bucket: bucket, Acc: NewAccumulator()}
			index[key] = g
			groups = append(groups, g)
		}
		g.Acc.Observe(ev.EventType, ev.URL, ev.Referrer, ev.SessionID)
	}
	return groups
}
