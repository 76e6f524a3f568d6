package server

import (
	"yapp/internal/cache"
	"yapp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles PUT /api/user (registration)
// @Summary Register a new account
// @Tags User
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 416 {object} models.ErrorResponse
// @Router /user [put]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.FirstName == "" || req.LastName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	taken, err := s.userRepo.ExistsByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if taken {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Username already exists"))
	}

	taken, err = s.userRepo.ExistsByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if taken {
		// Historical status for duplicate email, kept for client compatibility.
		return models.RespondWithError(c, fiber.StatusRequestedRangeNotSatisfiable,
			models.NewConflictError("User already exists"))
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		UIScale:   "Normal",
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created",
		"id":      user.ID,
	})
}

// UpdateUser handles PATCH /api/user (partial update of mutable fields)
// @Summary Update profile fields and preferences
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} models.ErrorResponse
// @Router /user [patch]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req struct {
		credentials
		FirstName             *string `json:"first_name"`
		LastName              *string `json:"last_name"`
		DarkMode              *bool   `json:"dark_mode"`
		ProfanityFilter       *bool   `json:"profanity_filter"`
		UIScale               *string `json:"ui_scale"`
		ProfilePictureMediaID *uint   `json:"profile_picture_media_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.requireAuth(c, req.credentials)
	if err != nil {
		return nil
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.DarkMode != nil {
		user.DarkMode = *req.DarkMode
	}
	if req.ProfanityFilter != nil {
		user.ProfanityFilter = *req.ProfanityFilter
	}
	if req.UIScale != nil {
		user.UIScale = *req.UIScale
	}
	if req.ProfilePictureMediaID != nil {
		user.MediaID = req.ProfilePictureMediaID
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.InvalidateProfile(c.Context(), user.ID)

	return c.JSON(fiber.Map{"message": "User updated"})
}

// GetAllUsers handles GET /api/user.
// Debug-only: dumps every account including plaintext passwords and keys.
// @Summary List all users (debug)
// @Tags User
// @Produce json
// @Success 200 {array} models.DebugUser
// @Router /user [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	users, err := s.userService.ListDebugUsers(c.Context(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(users)
}

// GetUserProfile handles GET /api/user/:id
// @Summary Public profile subset for a user
// @Tags User
// @Produce json
// @Success 200 {object} models.PublicProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetPublicProfile(c.Context(), id)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(profile)
}
