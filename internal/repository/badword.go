package repository

import (
	"context"

	"yapp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadWordRepository defines the interface for the profanity deny-list.
type BadWordRepository interface {
	ListWords(ctx context.Context) ([]string, error)
	Add(ctx context.Context, word string) error
}

type badWordRepository struct {
	db *gorm.DB
}

// NewBadWordRepository creates a new bad-word repository
func NewBadWordRepository(db *gorm.DB) BadWordRepository {
	return &badWordRepository{db: db}
}

func (r *badWordRepository) ListWords(ctx context.Context) ([]string, error) {
	var words []string
	if err := r.db.WithContext(ctx).
		Model(&models.BadWord{}).
		Order("id").
		Pluck("word", &words).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return words, nil
}

// Add inserts a deny-list entry; duplicates are swallowed so seeding is idempotent.
func (r *badWordRepository) Add(ctx context.Context, word string) error {
	bw := models.BadWord{Word: word}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&bw).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
