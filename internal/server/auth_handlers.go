package server

import (
	"yapp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Login handles POST /api/login
// @Summary Log in with username and password, rotating the API key
// @Tags Authentication
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User"))
	}

	// Plaintext comparison is the stored contract; see DESIGN.md.
	if user.Password != req.Password {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect password"))
	}

	key, err := generateAPIKey()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	user.APIKey = &key
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	profilePicture, err := s.userService.ProfilePicture(c.Context(), user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"first_name":       user.FirstName,
		"last_name":        user.LastName,
		"username":         user.Username,
		"dark_mode":        user.DarkMode,
		"profanity_filter": user.ProfanityFilter,
		"ui_scale":         user.UIScale,
		"profile_picture":  profilePicture,
		"api_key":          key,
	})
}

// Logout handles POST /api/logout
// @Summary Log out, clearing the API key
// @Tags Authentication
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} models.ErrorResponse
// @Router /logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.requireAuth(c, req)
	if err != nil {
		return nil
	}

	user.APIKey = nil
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"message": "User logged out"})
}

// ChangePassword handles PATCH /api/change_password
// @Summary Change password, verifying the current one
// @Tags Authentication
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /change_password [patch]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		credentials
		Password    string `json:"password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Password == "" || req.NewPassword == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	user, err := s.requireAuth(c, req.credentials)
	if err != nil {
		return nil
	}

	if user.Password != req.Password {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect password"))
	}

	user.Password = req.NewPassword
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}
