package models

// WebsiteModel is a registered tracking target owned by a user.
type WebsiteModel struct {
	Base
	Name   string `json:"name"   gorm:"not null"`
	Domain string `json:"domain" gorm:"index;not null"`
	UserID string `json:"-"      gorm:"index;not null"`
}

func (WebsiteModel) TableName() string { return "websites" }
