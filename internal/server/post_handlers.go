package server

import (
	"yapp/internal/models"
	"yapp/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const maxContentLen = 1024

// CreatePost handles PUT /api/post
// @Summary Create a post with optional attached media
// @Tags Post
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /post [put]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		credentials
		Content string `json:"content"`
		MediaID *uint  `json:"media_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.requireAuth(c, req.credentials)
	if err != nil {
		return nil
	}

	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}
	if len(req.Content) > maxContentLen {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content too long (max 1024 characters)"))
	}

	post := &models.Post{
		Content:  req.Content,
		AuthorID: user.ID,
		MediaID:  req.MediaID,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created",
		"id":      post.ID,
	})
}

// GetFeed handles GET /api/post
// Credentials arrive as query parameters; filters are optional.
// @Summary Ranked, paginated, searchable feed
// @Tags Post
// @Produce json
// @Param username query string true "Username"
// @Param api_key query string true "API key"
// @Param offset query int false "Offset (default 0)"
// @Param limit query int false "Limit (default 10, max 20)"
// @Param search query string false "Case-insensitive substring filter on content"
// @Param dislikes_only query bool false "Only posts the caller downvoted"
// @Success 200 {array} models.FeedItem
// @Failure 401 {object} models.ErrorResponse
// @Router /post [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	creds := credentials{
		Username: c.Query("username"),
		APIKey:   c.Query("api_key"),
	}
	user, err := s.requireAuth(c, creds)
	if err != nil {
		return nil
	}

	q := repository.FeedQuery{
		Limit:        c.QueryInt("limit", repository.DefaultFeedLimit),
		Offset:       c.QueryInt("offset", 0),
		Search:       c.Query("search"),
		DislikesOnly: c.QueryBool("dislikes_only", false),
	}

	items, err := s.feedService.List(c.Context(), user, q)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(items)
}

// DeletePost handles DELETE /api/post/:id
// Any authenticated caller may delete any post; ownership is not checked.
// @Summary Delete a post by id
// @Tags Post
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /post/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.requireAuth(c, req); err != nil {
		return nil
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post"))
	}

	if err := s.postRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
