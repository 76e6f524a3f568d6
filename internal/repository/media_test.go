package repository

import (
	"context"
	"testing"

	"yapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaRepository_FindOrCreate_DeduplicatesByContent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMediaRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")

	first, created, err := repo.FindOrCreate(ctx, "aGVsbG8=", &owner.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)

	// Same bytes from a different uploader reuse the existing row.
	second, created, err := repo.FindOrCreate(ctx, "aGVsbG8=", &stranger.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var rows int64
	require.NoError(t, db.Model(&models.Media{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestMediaRepository_FindOrCreate_DistinctContent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMediaRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")

	a, created, err := repo.FindOrCreate(ctx, "Zmlyc3Q=", &owner.ID)
	require.NoError(t, err)
	assert.True(t, created)

	b, created, err := repo.FindOrCreate(ctx, "c2Vjb25k", &owner.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMediaRepository_GetByID_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMediaRepository(db)

	got, err := repo.GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMediaRepository_GetBlobs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMediaRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	a, _, err := repo.FindOrCreate(ctx, "Zmlyc3Q=", &owner.ID)
	require.NoError(t, err)
	b, _, err := repo.FindOrCreate(ctx, "c2Vjb25k", &owner.ID)
	require.NoError(t, err)

	blobs, err := repo.GetBlobs(ctx, []uint{a.ID, b.ID, 999})
	require.NoError(t, err)
	assert.Len(t, blobs, 2)
	assert.Equal(t, "Zmlyc3Q=", blobs[a.ID])
	assert.Equal(t, "c2Vjb25k", blobs[b.ID])

	empty, err := repo.GetBlobs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
