package service

import (
	"context"
	"testing"

	"yapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBadWordRepo serves a fixed deny-list.
type stubBadWordRepo struct {
	words []string
	calls int
}

func (s *stubBadWordRepo) ListWords(_ context.Context) ([]string, error) {
	s.calls++
	return s.words, nil
}

func (s *stubBadWordRepo) Add(_ context.Context, word string) error {
	s.words = append(s.words, word)
	return nil
}

func TestMask(t *testing.T) {
	words := []string{"bad", "awful"}

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"single token", "this is bad news", "this is *** news"},
		{"case insensitive", "this is BAD news", "this is *** news"},
		{"mixed case deny entry", "totally Awful stuff", "totally *** stuff"},
		{"multiple hits", "bad bad awful", "*** *** ***"},
		{"substring passes through", "badge of honor", "badge of honor"},
		{"punctuation attached passes through", "that was bad!", "that was bad!"},
		{"no hits", "perfectly fine", "perfectly fine"},
		{"empty content", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mask(tt.content, words))
		})
	}
}

func TestMask_CollapsesWhitespace(t *testing.T) {
	// Fields-based tokenization rejoins with single spaces.
	assert.Equal(t, "one *** three", Mask("one   bad\tthree", []string{"bad"}))
}

func TestMask_EmptyDenyList(t *testing.T) {
	assert.Equal(t, "anything  goes", Mask("anything  goes", nil))
}

func TestProfanityService_Apply_FilterEnabled(t *testing.T) {
	repo := &stubBadWordRepo{words: []string{"bad"}}
	svc := NewProfanityService(repo)

	user := &models.User{ID: 1, ProfanityFilter: true}
	items := []*models.FeedItem{
		{Content: "this is bad news"},
		{Content: "all clear"},
	}

	require.NoError(t, svc.Apply(context.Background(), user, items))
	assert.Equal(t, "this is *** news", items[0].Content)
	assert.Equal(t, "all clear", items[1].Content)
}

func TestProfanityService_Apply_FilterDisabled(t *testing.T) {
	repo := &stubBadWordRepo{words: []string{"bad"}}
	svc := NewProfanityService(repo)

	user := &models.User{ID: 1, ProfanityFilter: false}
	items := []*models.FeedItem{{Content: "this is bad news"}}

	require.NoError(t, svc.Apply(context.Background(), user, items))
	assert.Equal(t, "this is bad news", items[0].Content)
	assert.Zero(t, repo.calls, "deny-list must not be loaded when the filter is off")
}
