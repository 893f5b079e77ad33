package models

// UserModel represents a dashboard account that owns websites.
type UserModel struct {
	Base
	Email    string `json:"email"    gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }
