package models

// BadWord is one entry of the profanity deny-list.
type BadWord struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Word string `gorm:"size:64;uniqueIndex;not null" json:"word"`
}

// TableName keeps the historical table name.
func (BadWord) TableName() string {
	return "bad_words"
}
