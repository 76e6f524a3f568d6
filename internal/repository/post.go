package repository

import (
	"context"
	"strings"
	"time"

	"yapp/internal/models"

	"gorm.io/gorm"
)

// downvoteCountSub counts a post's downvotes; usable in SELECT and ORDER BY.
const downvoteCountSub = "(SELECT COUNT(*) FROM downvotes WHERE downvotes.post_id = posts.id)"

// FeedQuery holds the parameters of one feed request.
type FeedQuery struct {
	UserID       uint
	Limit        int
	Offset       int
	Search       string
	DislikesOnly bool
}

const (
	// DefaultFeedLimit is the page size when the request does not name one.
	DefaultFeedLimit = 10
	// MaxFeedLimit caps the page size regardless of what the request asks.
	MaxFeedLimit = 20
)

// Normalize clamps pagination to the supported window: limit to [1,20]
// (an explicit 0 clamps to 1), offset floored at 0. Absent limits get the
// default at the HTTP layer, before this runs.
func (q *FeedQuery) Normalize() {
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > MaxFeedLimit {
		q.Limit = MaxFeedLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
	Feed(ctx context.Context, q FeedQuery) ([]*models.FeedItem, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// The insert reports the assigned id on the post itself.
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// feedRow is the raw scan target for one ranked feed row.
type feedRow struct {
	ID             uint
	Content        string
	AuthorID       uint
	MediaID        *uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DownvotesCount int64
	Disliked       bool
}

// Feed returns one page of the ranked feed for the given caller.
//
// Posts are ordered by penalized recency: each downvote shifts the post's
// effective timestamp one day into the past, so heavily downvoted posts sink
// without being removed. Ties break on id descending so paging is stable.
func (r *postRepository) Feed(ctx context.Context, q FeedQuery) ([]*models.FeedItem, error) {
	db := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.content, posts.author_id, posts.media_id, posts.created_at, posts.updated_at, "+
			downvoteCountSub+" AS downvotes_count, "+
			"EXISTS(SELECT 1 FROM downvotes WHERE downvotes.post_id = posts.id AND downvotes.user_id = ?) AS disliked",
			q.UserID)

	if q.Search != "" {
		db = r.applySearch(db, q.Search)
	}
	if q.DislikesOnly {
		db = db.Where(
			"EXISTS(SELECT 1 FROM downvotes WHERE downvotes.post_id = posts.id AND downvotes.user_id = ?)",
			q.UserID)
	}

	var rows []feedRow
	if err := db.Order(r.penalizedOrder()).
		Limit(q.Limit).
		Offset(q.Offset).
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.enrich(ctx, rows)
}

// applySearch adds the case-insensitive substring filter on content.
func (r *postRepository) applySearch(db *gorm.DB, search string) *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return db.Where("posts.content ILIKE ?", "%"+search+"%")
	}
	return db.Where("LOWER(posts.content) LIKE ?", "%"+strings.ToLower(search)+"%")
}

// penalizedOrder builds the dialect-specific ORDER BY for penalized recency.
func (r *postRepository) penalizedOrder() string {
	if r.db.Dialector.Name() == "postgres" {
		return "posts.created_at - " + downvoteCountSub + " * INTERVAL '1 day' DESC, posts.id DESC"
	}
	// SQLite has no interval arithmetic; datetime() applies day offsets.
	return "datetime(posts.created_at, '-' || " + downvoteCountSub + " || ' days') DESC, posts.id DESC"
}

// enrich resolves author display fields and media blobs for scanned rows.
func (r *postRepository) enrich(ctx context.Context, rows []feedRow) ([]*models.FeedItem, error) {
	items := make([]*models.FeedItem, 0, len(rows))
	if len(rows) == 0 {
		return items, nil
	}

	authorIDs := make([]uint, 0, len(rows))
	seen := map[uint]struct{}{}
	for _, row := range rows {
		if _, ok := seen[row.AuthorID]; ok {
			continue
		}
		seen[row.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, row.AuthorID)
	}

	var authors []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	authorsByID := make(map[uint]*models.User, len(authors))
	for i := range authors {
		authorsByID[authors[i].ID] = &authors[i]
	}

	mediaIDs := make([]uint, 0, len(rows))
	seenMedia := map[uint]struct{}{}
	collect := func(id *uint) {
		if id == nil {
			return
		}
		if _, ok := seenMedia[*id]; ok {
			return
		}
		seenMedia[*id] = struct{}{}
		mediaIDs = append(mediaIDs, *id)
	}
	for _, row := range rows {
		collect(row.MediaID)
		if author := authorsByID[row.AuthorID]; author != nil {
			collect(author.MediaID)
		}
	}

	blobs := map[uint]string{}
	if len(mediaIDs) > 0 {
		var media []models.Media
		if err := r.db.WithContext(ctx).Where("id IN ?", mediaIDs).Find(&media).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		for _, m := range media {
			blobs[m.ID] = m.Base64
		}
	}

	blob := func(id *uint) *string {
		if id == nil {
			return nil
		}
		if b, ok := blobs[*id]; ok {
			return &b
		}
		return nil
	}

	for _, row := range rows {
		item := &models.FeedItem{
			ID:        row.ID,
			Content:   row.Content,
			Media:     blob(row.MediaID),
			Downvotes: row.DownvotesCount,
			Disliked:  row.Disliked,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
		if author := authorsByID[row.AuthorID]; author != nil {
			item.FirstName = author.FirstName
			item.LastName = author.LastName
			item.Username = author.Username
			item.ProfilePicture = blob(author.MediaID)
		}
		items = append(items, item)
	}
	return items, nil
}
