package service

import (
	"context"

	"yapp/internal/cache"
	"yapp/internal/models"
	"yapp/internal/repository"
)

// UserService provides profile lookups and the debug account dump.
type UserService struct {
	userRepo  repository.UserRepository
	mediaRepo repository.MediaRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, mediaRepo repository.MediaRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
	}
}

// GetPublicProfile returns the unauthenticated profile subset for a user,
// cached with a TTL and invalidated on profile updates.
func (s *UserService) GetPublicProfile(ctx context.Context, id uint) (*models.PublicProfile, error) {
	var profile models.PublicProfile
	err := cache.Aside(ctx, cache.ProfileKey(id), &profile, cache.ProfileTTL, func() error {
		user, ferr := s.userRepo.GetByID(ctx, id)
		if ferr != nil {
			return ferr
		}
		if user == nil {
			return models.NewNotFoundError("User")
		}

		profile = models.PublicProfile{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Username:  user.Username,
		}
		if user.MediaID != nil {
			media, merr := s.mediaRepo.GetByID(ctx, *user.MediaID)
			if merr != nil {
				return merr
			}
			if media != nil {
				profile.ProfilePicture = &media.Base64
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProfilePicture resolves the blob a user's media reference points at, nil when absent.
func (s *UserService) ProfilePicture(ctx context.Context, user *models.User) (*string, error) {
	if user.MediaID == nil {
		return nil, nil
	}
	media, err := s.mediaRepo.GetByID(ctx, *user.MediaID)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, nil
	}
	return &media.Base64, nil
}

// ListDebugUsers dumps every account including plaintext credentials.
// Serves the debug-only listing endpoint.
func (s *UserService) ListDebugUsers(ctx context.Context, limit, offset int) ([]models.DebugUser, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	dump := make([]models.DebugUser, 0, len(users))
	for _, u := range users {
		dump = append(dump, models.DebugUser{
			ID:              u.ID,
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			Username:        u.Username,
			Email:           u.Email,
			Password:        u.Password,
			APIKey:          u.APIKey,
			DarkMode:        u.DarkMode,
			ProfanityFilter: u.ProfanityFilter,
			UIScale:         u.UIScale,
			MediaID:         u.MediaID,
		})
	}
	return dump, nil
}
