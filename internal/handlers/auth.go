// Package handlers contains the HTTP handlers that translate fiber
// requests into service calls and service results into JSON responses.
package handlers

import (
	"errors"
	"log"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/auth"
	"edcall/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, err := h.authService.Register(&input)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) || errors.Is(err, repositories.ErrPhoneTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return utils.BadRequest(c, err.Error())
	}

	return utils.Created(c, fiber.Map{
		"message": "registration successful",
		"user":    userResponse(user),
	})
}

// Login authenticates a user by email or phone and issues a token pair.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, accessToken, refreshToken, err := h.authService.Login(req.Email, req.Phone, req.Password)
	if err != nil {
		return utils.Unauthorized(c, err.Error())
	}

	return utils.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          userResponse(user),
	})
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	accessToken, refreshToken, err := h.authService.RefreshTokens(req.RefreshToken)
	if err != nil {
		return utils.Unauthorized(c, err.Error())
	}

	return utils.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout marks the user offline and invalidates outstanding tokens.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	if err := h.authService.Logout(claims.UserID); err != nil {
		log.Printf("Logout failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to log out")
	}

	return utils.Success(c, fiber.Map{"message": "logged out"})
}

// ChangePassword updates the authenticated user's password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.authService.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, fiber.Map{"message": "password changed"})
}

// GetProfile returns the authenticated user's own profile.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	user, err := h.authService.GetUserByID(claims.UserID)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	return utils.Success(c, userResponse(user))
}

// userResponse shapes a user for API output. The password hash never
// leaves the server; this keeps the rest explicit.
func userResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":                    user.ID,
		"name":                  user.Name,
		"email":                 user.Email,
		"phone":                 user.Phone,
		"age":                   user.Age,
		"bio":                   user.Bio,
		"location":              user.Location,
		"photo":                 user.Photo,
		"interests":             user.Interests,
		"is_online":             user.IsOnline,
		"tier":                  user.Tier,
		"role":                  user.Role,
		"points":                user.Points,
		"trial_calls_remaining": user.TrialCallsRemaining,
		"blocked":               user.Blocked,
		"verification_status":   user.VerificationStatus,
		"created_at":            user.CreatedAt,
	}
}
