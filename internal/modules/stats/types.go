package stats

import "errors"

// Overview is the cached dashboard summary for one website.
//
// UniqueSessions sums per-bucket distinct-session counts plus the live-window
// distinct set; a session spanning a bucket boundary or the live window is
// counted once per window it appears in. Known approximation, kept on purpose.
type Overview struct {
	EventTypeCounts map[string]int64 `json:"eventTypeCounts"`
	UniqueSessions  int64            `json:"uniqueSessions"`
	TopPages        []PageCount      `json:"topPages"`
	TopReferrers    []ReferrerCount  `json:"topReferrers"`
}

type PageCount struct {
	URL   string `json:"url"`
	Count int64  `json:"count"`
}

type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

var errNotOwner = errors.New("not your website")
