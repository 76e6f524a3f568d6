package models

import (
	"time"
)

// Media is an opaque base64-encoded blob. Rows are immutable after creation
// and shared by reference: an upload whose content exactly matches an
// existing row reuses that row's id instead of inserting a duplicate.
type Media struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Base64    string    `gorm:"type:text;not null" json:"base64"`
	AuthorID  *uint     `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
