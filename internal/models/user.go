package models

import (
	"time"
)

// User is a registered account. Passwords are stored in clear text and the
// API key rotates on every successful login; a nil key means logged out.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FirstName       string    `gorm:"size:64;not null" json:"first_name"`
	LastName        string    `gorm:"size:64;not null" json:"last_name"`
	Username        string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email           string    `gorm:"size:256;uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"size:256;not null" json:"-"`
	APIKey          *string   `gorm:"size:256" json:"-"`
	DarkMode        bool      `gorm:"default:false" json:"dark_mode"`
	ProfanityFilter bool      `gorm:"default:false" json:"profanity_filter"`
	UIScale         string    `gorm:"size:16;default:Normal" json:"ui_scale"`
	MediaID         *uint     `json:"media_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Posts     []Post     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Downvotes []Downvote `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// PublicProfile is the unauthenticated subset of a user record.
type PublicProfile struct {
	ID             uint    `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
}

// DebugUser mirrors a full user row, credentials included. Only the
// debug listing endpoint serializes it.
type DebugUser struct {
	ID              uint    `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	APIKey          *string `json:"api_key"`
	DarkMode        bool    `json:"dark_mode"`
	ProfanityFilter bool    `json:"profanity_filter"`
	UIScale         string  `json:"ui_scale"`
	MediaID         *uint   `json:"media_id,omitempty"`
}
