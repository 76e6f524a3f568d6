package repository

import (
	"context"

	"yapp/internal/models"
	"yapp/internal/observability"

	"gorm.io/gorm"
)

// MediaRepository defines the interface for media data operations
type MediaRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Media, error)
	FindOrCreate(ctx context.Context, content string, authorID *uint) (*models.Media, bool, error)
	GetBlobs(ctx context.Context, ids []uint) (map[uint]string, error)
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) GetByID(ctx context.Context, id uint) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).First(&media, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &media, nil
}

// FindOrCreate stores content-addressed blobs: an upload whose content
// exactly matches an existing row answers with that row instead of
// inserting. The insert reports its own assigned id, so no lookup-by-value
// happens after a write. The returned bool is true when a new row was created.
func (r *mediaRepository) FindOrCreate(ctx context.Context, content string, authorID *uint) (*models.Media, bool, error) {
	var media models.Media
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("base64 = ?", content).First(&media).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		media = models.Media{Base64: content, AuthorID: authorID}
		created = true
		return tx.Create(&media).Error
	})
	if err != nil {
		return nil, false, models.NewInternalError(err)
	}

	if !created {
		observability.MediaDeduplicated.Inc()
	}
	return &media, created, nil
}

// GetBlobs returns base64 content for the given media ids, keyed by id.
func (r *mediaRepository) GetBlobs(ctx context.Context, ids []uint) (map[uint]string, error) {
	blobs := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return blobs, nil
	}

	var rows []models.Media
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, m := range rows {
		blobs[m.ID] = m.Base64
	}
	return blobs, nil
}
