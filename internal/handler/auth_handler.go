package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tripplanner/internal/auth"
	"tripplanner/internal/errors"
	"tripplanner/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    service.AuthService
	passwordPolicy *service.PasswordPolicy
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		passwordPolicy: service.NewPasswordPolicy(),
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name"`
}

// LoginRequest represents a login form. The username field accepts either a
// username or an email address.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse represents an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.PublicUser
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.New("invalid request body", errors.CodeValidationFailed))
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewValidation("validation failed", fieldMessages(err)))
	}

	if failures := h.passwordPolicy.Check(req.Password); len(failures) > 0 {
		return c.JSON(http.StatusBadRequest, errors.NewValidation("password does not meet requirements", failures))
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Username, req.Password, req.FullName)
	if err != nil {
		switch err {
		case service.ErrEmailTaken:
			return c.JSON(http.StatusBadRequest, errors.New("Email already registered", errors.CodeEmailTaken))
		case service.ErrUsernameTaken:
			return c.JSON(http.StatusBadRequest, errors.New("Username already taken", errors.CodeUsernameTaken))
		}
		return c.JSON(http.StatusInternalServerError, errors.New("failed to register user", errors.CodeInternal))
	}

	return c.JSON(http.StatusCreated, user.Public())
}

// Login godoc
// @Summary Login with username or email
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username or email"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.New("invalid request body", errors.CodeValidationFailed))
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewValidation("validation failed", fieldMessages(err)))
	}

	accessToken, refreshToken, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return c.JSON(http.StatusUnauthorized, errors.New("Incorrect username or password", errors.CodeInvalidCredentials))
		}
		return c.JSON(http.StatusInternalServerError, errors.New("failed to login", errors.CodeInternal))
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}

// Me godoc
// @Summary Get the current authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PublicUser
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return unauthenticated(c)
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), claims.Subject)
	if err != nil {
		return unauthenticated(c)
	}

	return c.JSON(http.StatusOK, user.Public())
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.New("invalid request body", errors.CodeValidationFailed))
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewValidation("validation failed", fieldMessages(err)))
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			return unauthenticated(c)
		}
		return c.JSON(http.StatusInternalServerError, errors.New("failed to refresh token", errors.CodeInternal))
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// Logout godoc
// @Summary Logout and revoke tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.New("invalid request body", errors.CodeValidationFailed))
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewValidation("validation failed", fieldMessages(err)))
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken, bearerToken(c)); err != nil {
		if err == service.ErrInvalidRefreshToken {
			return unauthenticated(c)
		}
		return c.JSON(http.StatusInternalServerError, errors.New("failed to logout", errors.CodeInternal))
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// unauthenticated writes the uniform 401 response used for every token or
// credential failure.
func unauthenticated(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, errors.New("could not validate credentials", errors.CodeInvalidToken))
}

// bearerToken extracts the bearer token from the Authorization header, or
// returns an empty string when absent.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}
