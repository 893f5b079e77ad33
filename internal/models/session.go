package models

// SessionModel identifies one continuous visit on one website.
//
// The session id is an opaque client-supplied string; it is only unique in
// combination with the website, so the compound unique index is the real key.
// Rows are created lazily on the first event of a session and never mutated.
type SessionModel struct {
	Base
	SessionID string `json:"sessionId" gorm:"index:idx_sessions_sid_site,unique,composite:1;not null"`
	WebsiteID string `json:"websiteId" gorm:"index:idx_sessions_sid_site,unique,composite:2;not null"`
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent" gorm:"type:text"`
}

func (SessionModel) TableName() string { return "sessions" }
