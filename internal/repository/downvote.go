package repository

import (
	"context"

	"yapp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DownvoteRepository defines the interface for downvote data operations
type DownvoteRepository interface {
	Add(ctx context.Context, userID, postID uint) error
	Remove(ctx context.Context, userID, postID uint) error
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	Count(ctx context.Context, postID uint) (int64, error)
}

type downvoteRepository struct {
	db *gorm.DB
}

// NewDownvoteRepository creates a new downvote repository
func NewDownvoteRepository(db *gorm.DB) DownvoteRepository {
	return &downvoteRepository{db: db}
}

// Add records a downvote. Repeated adds for the same (user, post) pair are
// no-ops: the conflict on the composite key is swallowed, so concurrent
// toggles cannot error.
func (r *downvoteRepository) Add(ctx context.Context, userID, postID uint) error {
	dv := models.Downvote{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dv).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Remove deletes the downvote if present. Removing an absent pair is a no-op.
func (r *downvoteRepository) Remove(ctx context.Context, userID, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Downvote{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *downvoteRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Downvote{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *downvoteRepository) Count(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Downvote{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
