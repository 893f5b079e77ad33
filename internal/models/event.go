package models

import "time"

// EventTypePageView is the only event type with special aggregation meaning:
// it feeds the per-URL view counters.
const EventTypePageView = "page_view"

// EventModel is an immutable behavioral fact reported by the tracker.
// Timestamp is assigned server-side at persistence time.
type EventModel struct {
	Base
	WebsiteID string    `json:"websiteId" gorm:"index:idx_events_site_ts,composite:1;not null"`
	SessionID string    `json:"sessionId" gorm:"index;not null"`
	EventType string    `json:"eventType" gorm:"index;not null"`
	URL       string    `json:"url"       gorm:"not null"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"userAgent" gorm:"type:text"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp" gorm:"index:idx_events_site_ts,composite:2;index"`
}

func (EventModel) TableName() string { return "events" }
