// Package service contains business logic between handlers and repositories.
package service

import (
	"context"
	"strings"

	"yapp/internal/cache"
	"yapp/internal/models"
	"yapp/internal/observability"
	"yapp/internal/repository"
)

// MaskString replaces every denied token.
const MaskString = "***"

// ProfanityService masks denied words in post content for users that have
// the preference enabled.
type ProfanityService struct {
	badWordRepo repository.BadWordRepository
}

// NewProfanityService returns a new ProfanityService.
func NewProfanityService(badWordRepo repository.BadWordRepository) *ProfanityService {
	return &ProfanityService{badWordRepo: badWordRepo}
}

// Words returns the deny-list, cached with a TTL since every filtered feed
// request needs it. Falls through to the database on cache miss.
func (s *ProfanityService) Words(ctx context.Context) ([]string, error) {
	var words []string
	err := cache.Aside(ctx, cache.BadWordsKey, &words, cache.BadWordsTTL, func() error {
		var ferr error
		words, ferr = s.badWordRepo.ListWords(ctx)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// Mask applies whole-token, case-insensitive, exact-match masking: content
// is split on whitespace, each token whose lowercase form equals a denied
// word is replaced wholesale, and tokens are rejoined with single spaces.
// Punctuation-attached words and partial matches pass through untouched;
// smarter matching would break compatibility with stored content.
func Mask(content string, words []string) string {
	if len(words) == 0 {
		return content
	}

	denied := make(map[string]struct{}, len(words))
	for _, w := range words {
		denied[strings.ToLower(w)] = struct{}{}
	}

	tokens := strings.Fields(content)
	masked := 0
	for i, tok := range tokens {
		if _, ok := denied[strings.ToLower(tok)]; ok {
			tokens[i] = MaskString
			masked++
		}
	}
	if masked > 0 {
		observability.MaskedTokens.Add(float64(masked))
	}
	return strings.Join(tokens, " ")
}

// Apply masks the content of every feed item when the user's preference is
// enabled; with the preference off, content is returned unmodified.
func (s *ProfanityService) Apply(ctx context.Context, user *models.User, items []*models.FeedItem) error {
	if user == nil || !user.ProfanityFilter {
		return nil
	}

	words, err := s.Words(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		item.Content = Mask(item.Content, words)
	}
	return nil
}
