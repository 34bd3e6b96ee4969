package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/services"
	"github.com/promptforge/prompt-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== REGISTRATION / LOGIN =====

// Register creates a new account and returns a token pair
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse "Validation failed or identifier taken"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering user")

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates with username or email plus password
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in user")

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===== TOKEN LIFECYCLE =====

// Logout revokes the presented refresh token
// @Summary Log out
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid refresh token"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logging out user")

	var req models.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Successfully logged out"})
}

// RefreshToken issues a fresh access token from a refresh token
// @Summary Refresh the access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.TokenPair
// @Failure 401 {object} ErrorResponse "Invalid or revoked refresh token"
// @Router /auth/token/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	h.LogRequest(c, "Refreshing access token")

	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		// A rejected refresh token is a 401 so clients know to log in again.
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired refresh token",
			})
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// ===== GOOGLE SIGN-IN =====

// GoogleAuth signs a user in from a Google ID token
// @Summary Google sign-in with an ID token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse "Token rejected by Google"
// @Router /auth/google [post]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	h.LogRequest(c, "Authenticating with Google ID token")

	var req models.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.GoogleAuthenticate(c.Request.Context(), req.IDToken)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleAuthCode signs a user in from an OAuth authorization code
// @Summary Google sign-in with an authorization code
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse "Code exchange rejected by Google"
// @Router /auth/google/code [post]
func (h *AuthHandler) GoogleAuthCode(c *gin.Context) {
	h.LogRequest(c, "Authenticating with Google authorization code")

	var req models.GoogleCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.GoogleAuthenticateCode(c.Request.Context(), req.Code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===== PROFILE =====

// GetProfile returns the authenticated user's profile
// @Summary Get own profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	h.LogRequest(c, "Getting user profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the authenticated user's profile
// @Summary Update own profile
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	h.LogRequest(c, "Updating user profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ===== ERROR HANDLING =====

func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Username already taken",
		})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Email already registered",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid credentials",
		})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid or expired token",
		})
	case errors.Is(err, services.ErrGoogleAuthFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Google authentication failed",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
