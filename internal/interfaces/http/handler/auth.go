package handler

import (
	"strings"

	identityapp "github.com/billing/backend/internal/application/identity"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication API endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest represents a registration request
// @Description Request body for registering a new user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=200" example:"owner@example.com"`
	Password string `json:"password" binding:"required,min=8,max=128" example:"s3cret-pass"`
	FullName string `json:"full_name" binding:"required,min=1,max=200" example:"Jordan Alvarez"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff" example:"staff"`
}

// LoginRequest represents a login request
// @Description Request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"owner@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// RefreshTokenRequest represents a token refresh request
// @Description Request body for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register godoc
// @ID           register
// @Summary      Register a new user
// @Description  Create a new user account. Defaults to the staff role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), identityapp.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     identity.Role(req.Role),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, user)
}

// Login godoc
// @ID           login
// @Summary      Log in
// @Description  Authenticate with email and password, returning a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RefreshToken godoc
// @ID           refreshToken
// @Summary      Refresh tokens
// @Description  Exchange a valid refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), identityapp.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout godoc
// @ID           logout
// @Summary      Log out
// @Description  Revoke the current access token
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader(middleware.AuthHeaderKey)
	token := strings.TrimPrefix(authHeader, middleware.BearerPrefix)
	if token == "" || token == authHeader {
		h.Unauthorized(c, "Missing bearer token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		AccessToken: token,
	}); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Me godoc
// @ID           currentUser
// @Summary      Current user
// @Description  Return the profile of the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}
