package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"size:1024;not null" json:"content"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	MediaID   *uint     `json:"media_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// DownvotesCount is not persisted; computed at query time
	DownvotesCount int64 `gorm:"-" json:"downvotes"`
	// Disliked indicates whether the current requesting user downvoted this post (computed)
	Disliked bool `gorm:"-" json:"disliked"`
}

// FeedItem is one enriched row of the ranked feed.
type FeedItem struct {
	ID             uint      `json:"id"`
	Content        string    `json:"content"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profile_picture"`
	Media          *string   `json:"media"`
	Downvotes      int64     `json:"downvotes"`
	Disliked       bool      `json:"disliked"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
