package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"yapp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// credentials is the username plus rotating API key pair carried by
// authenticated requests, in the body or (for GET) in the query string.
type credentials struct {
	Username string `json:"username"`
	APIKey   string `json:"api_key"`
}

// requireAuth resolves the credential pair to a user row. On failure it
// writes a 401 JSON response and returns errResponseWritten; callers should
// check: if err != nil { return nil }.
func (s *Server) requireAuth(c *fiber.Ctx, creds credentials) (*models.User, error) {
	if creds.Username == "" || creds.APIKey == "" {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("User API key not found"))
		return nil, errResponseWritten
	}

	user, err := s.userRepo.GetByCredentials(c.Context(), creds.Username, creds.APIKey)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
		return nil, errResponseWritten
	}
	if user == nil {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("User API key not found"))
		return nil, errResponseWritten
	}
	return user, nil
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// generateAPIKey returns a fresh random bearer credential as a hex string.
func generateAPIKey() (string, error) {
	buf := make([]byte, 128)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
