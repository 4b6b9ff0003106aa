package identity

import (
	"time"

	"github.com/billing/backend/internal/domain/identity"
)

// RegisterInput contains registration request data
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     identity.Role
}

// LoginInput contains login request data
type LoginInput struct {
	Email    string
	Password string
}

// UserInfo contains user information returned to clients
type UserInfo struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginResult contains the login response data
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput contains the refresh token request data
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the refreshed token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput contains the access token to revoke
type LogoutInput struct {
	AccessToken string
}

func userInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role.String(),
	}
}
