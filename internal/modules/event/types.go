package event

import "errors"

// TrackEventDTO is the ingestion payload. The target website is named in the
// body rather than inferred from a header, so one collector endpoint serves
// every site and proxied deployments need no header rewriting.
type TrackEventDTO struct {
	WebsiteID string `json:"websiteId" binding:"required"`
	EventType string `json:"eventType" binding:"required"`
	URL       string `json:"url" binding:"required"`
	SessionID string `json:"sessionId" binding:"required"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"userAgent"`
}

var errUnregisteredWebsite = errors.New("website is not registered")
