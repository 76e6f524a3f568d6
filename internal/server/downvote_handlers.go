package server

import (
	"yapp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddDownvote handles PUT /api/post/downvote/:id
// Idempotent: repeating the request for an already-downvoted post succeeds
// without creating a second row.
// @Summary Downvote a post
// @Tags Post
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /post/downvote/{id} [put]
func (s *Server) AddDownvote(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.requireAuth(c, req)
	if err != nil {
		return nil
	}

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post"))
	}

	if err := s.downvoteRepo.Add(c.Context(), user.ID, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	count, err := s.downvoteRepo.Count(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Post downvoted",
		"downvotes": count,
	})
}

// RemoveDownvote handles DELETE /api/post/downvote/:id
// Removing an absent downvote is a no-op success, mirroring the idempotent add.
// @Summary Remove a downvote from a post
// @Tags Post
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /post/downvote/{id} [delete]
func (s *Server) RemoveDownvote(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.requireAuth(c, req)
	if err != nil {
		return nil
	}

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post"))
	}

	if err := s.downvoteRepo.Remove(c.Context(), user.ID, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	count, err := s.downvoteRepo.Count(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Downvote removed",
		"downvotes": count,
	})
}
