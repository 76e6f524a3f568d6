// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"yapp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// BadWordsFile overrides the embedded profanity list when set.
	BadWordsFile string
}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Seeder{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Run clears existing data when requested and populates users, posts,
// downvotes and the profanity list.
func (s *Seeder) Run() error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := s.SeedBadWords(); err != nil {
		return fmt.Errorf("failed to seed bad words: %w", err)
	}

	users, err := s.SeedUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := s.SeedPosts(users, s.opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	downvotes, err := s.SeedDownvotes(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create downvotes: %w", err)
	}
	log.Printf("✓ %d downvotes created", downvotes)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// ClearAll truncates all seeded tables.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE downvotes, posts, media, users, bad_words RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedUsers creates n accounts with unique usernames and emails.
// Every account gets the password "password123".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		suffix := uuid.NewString()[:8]
		username := strings.ToLower(fmt.Sprintf("%s_%s_%s", first, last, suffix))

		user := models.User{
			FirstName:       first,
			LastName:        last,
			Username:        username,
			Email:           fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password:        "password123",
			DarkMode:        s.rng.Intn(2) == 0,
			ProfanityFilter: s.rng.Intn(4) == 0,
			UIScale:         "Normal",
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user %s: %w", username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts creates n posts spread over the past 90 days so the ranked
// feed has meaningful recency differences.
func (s *Seeder) SeedPosts(users []models.User, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		age := time.Duration(s.rng.Intn(90*24)) * time.Hour

		post := models.Post{
			Content:   gofakeit.Sentence(8 + s.rng.Intn(12)),
			AuthorID:  author.ID,
			CreatedAt: time.Now().Add(-age),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SeedDownvotes sprinkles downvotes across posts. Roughly a third of
// posts stay untouched so ranking penalties vary.
func (s *Seeder) SeedDownvotes(users []models.User, posts []models.Post) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, nil
	}

	total := 0
	for _, post := range posts {
		if s.rng.Intn(3) == 0 {
			continue
		}
		voters := s.rng.Intn(len(users)/2 + 1)
		for i := 0; i < voters; i++ {
			voter := users[s.rng.Intn(len(users))]
			dv := models.Downvote{PostID: post.ID, UserID: voter.ID}
			err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dv).Error
			if err != nil {
				return total, fmt.Errorf("create downvote: %w", err)
			}
			total++
		}
	}
	return total, nil
}

// SeedBadWords loads the profanity list into bad_words. Existing entries
// are kept; only missing words are inserted.
func (s *Seeder) SeedBadWords() error {
	var words []string
	var err error

	if s.opts.BadWordsFile != "" {
		data, rerr := os.ReadFile(s.opts.BadWordsFile)
		if rerr != nil {
			return fmt.Errorf("read bad words file: %w", rerr)
		}
		words, err = parseBadWords(data)
	} else {
		words, err = DefaultBadWords()
	}
	if err != nil {
		return err
	}

	for _, w := range words {
		entry := models.BadWord{Word: strings.ToLower(strings.TrimSpace(w))}
		if entry.Word == "" {
			continue
		}
		err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
		if err != nil {
			return fmt.Errorf("insert bad word %q: %w", entry.Word, err)
		}
	}
	return nil
}
