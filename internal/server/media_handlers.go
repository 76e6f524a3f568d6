package server

import (
	"yapp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateMedia handles PUT /api/media
// Uploads are de-duplicated by exact content equality: an upload whose blob
// matches an existing row answers with that row's id.
// @Summary Upload a base64 media blob (de-duplicated)
// @Tags Media
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /media [put]
func (s *Server) CreateMedia(c *fiber.Ctx) error {
	var req struct {
		credentials
		Base64 string `json:"base64"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.requireAuth(c, req.credentials)
	if err != nil {
		return nil
	}

	if req.Base64 == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	authorID := user.ID
	media, created, err := s.mediaRepo.FindOrCreate(c.Context(), req.Base64, &authorID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	status := fiber.StatusCreated
	message := "Media created"
	if !created {
		message = "Media already exists"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"id":      media.ID,
	})
}
