package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasker-api/internal/constants"
	"github.com/yukikurage/tasker-api/internal/dto"
	apierrors "github.com/yukikurage/tasker-api/internal/errors"
	"github.com/yukikurage/tasker-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new user.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProfileDTO(*user))
}

// Login authenticates a user, issues a token pair and keeps the refresh token in the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.storeRefreshToken(c, pair.RefreshToken.Value) {
		return
	}

	c.JSON(http.StatusOK, toTokenResponse(pair))
}

// Refresh rotates a refresh token taken from the body or, failing that, from the session.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := h.refreshTokenFromRequest(c)
	if token == "" {
		apierrors.Unauthorized(c, "Refresh token required")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.storeRefreshToken(c, pair.RefreshToken.Value) {
		return
	}

	c.JSON(http.StatusOK, toTokenResponse(pair))
}

// Logout revokes the refresh session and clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := h.refreshTokenFromRequest(c)

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) refreshTokenFromRequest(c *gin.Context) string {
	var req refreshTokenRequest
	// The body is optional; a missing or empty body falls back to the session.
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		return req.RefreshToken
	}

	session := sessions.Default(c)
	if token, ok := session.Get(constants.SessionKeyRefreshToken).(string); ok {
		return token
	}
	return ""
}

func (h *AuthHandler) storeRefreshToken(c *gin.Context, token string) bool {
	session := sessions.Default(c)
	session.Set(constants.SessionKeyRefreshToken, token)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}

func toTokenResponse(pair *services.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:      pair.AccessToken.Value,
		RefreshToken:     pair.RefreshToken.Value,
		TokenType:        "Bearer",
		AccessExpiresAt:  pair.AccessToken.ExpiresAt,
		RefreshExpiresAt: pair.RefreshToken.ExpiresAt,
		User:             dto.ToProfileDTO(*pair.User),
	}
}
