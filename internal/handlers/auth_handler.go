package handlers

import (
	"errors"

	"estilo/internal/models"
	"estilo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/refresh", h.HandleRefresh)
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleLogin authenticates a user and issues an access/refresh token pair.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, fiber.StatusBadRequest, err)
	}

	pair, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.Set("WWW-Authenticate", "Bearer")
			return detail(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

// RegisterRequest represents the registration form.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// HandleRegister creates a new non-admin user.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, fiber.StatusBadRequest, err)
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// RefreshRequest represents the refresh form. The token is deliberately
// not marked required: an absent token is an auth failure, not a schema
// failure.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// HandleRefresh exchanges a valid refresh token for a new access token.
// The refresh token itself is not rotated.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	access, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		c.Set("WWW-Authenticate", "Bearer")
		switch {
		case errors.Is(err, models.ErrMissingToken):
			return detail(c, fiber.StatusUnauthorized, "Refresh token not provided")
		case errors.Is(err, models.ErrUserNotFound):
			return detail(c, fiber.StatusUnauthorized, "User associated with token not found")
		case errors.Is(err, models.ErrInvalidCredentials):
			return detail(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
		default:
			return writeError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"access_token": access,
		"token_type":   "bearer",
	})
}
