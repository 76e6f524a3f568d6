package service

import (
	"context"
	"strconv"

	"yapp/internal/models"
	"yapp/internal/observability"
	"yapp/internal/repository"
)

// FeedService composes the ranked feed query with profanity filtering.
type FeedService struct {
	postRepo  repository.PostRepository
	profanity *ProfanityService
}

// NewFeedService returns a new FeedService.
func NewFeedService(postRepo repository.PostRepository, profanity *ProfanityService) *FeedService {
	return &FeedService{
		postRepo:  postRepo,
		profanity: profanity,
	}
}

// List returns one page of the caller's feed, masked according to the
// caller's profanity preference.
func (s *FeedService) List(ctx context.Context, user *models.User, q repository.FeedQuery) ([]*models.FeedItem, error) {
	q.UserID = user.ID
	q.Normalize()

	observability.FeedRequests.WithLabelValues(
		strconv.FormatBool(q.Search != ""),
		strconv.FormatBool(q.DislikesOnly),
	).Inc()

	items, err := s.postRepo.Feed(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := s.profanity.Apply(ctx, user, items); err != nil {
		return nil, err
	}
	return items, nil
}
