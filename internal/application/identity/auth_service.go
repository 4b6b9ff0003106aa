package identity

import (
	"context"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a new user account. The role defaults to staff.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	user, err := identity.NewUser(input.Email, input.Password, input.FullName, input.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role.String()))

	info := userInfo(user)
	return &info, nil
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to look up user for login", zap.Error(err))
		return nil, err
	}
	if user == nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	if !user.CanLogin() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role.String())
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  userInfo(user),
	}, nil
}

// RefreshToken issues a new token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
		}
	}

	// Reload the user so revoked accounts and role changes take effect
	// on the next access token.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("Failed to look up user during token refresh", zap.Error(err))
		return nil, err
	}
	if user == nil {
		s.logger.Warn("User not found during token refresh", zap.Int64("user_id", claims.UserID))
		return nil, shared.NewDomainError("UNAUTHORIZED", "User not found")
	}
	if !user.CanLogin() {
		s.logger.Warn("Token refresh for deactivated account", zap.Int64("user_id", user.ID))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role.String())
	if err != nil {
		s.logger.Error("Failed to generate token pair during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Token refreshed", zap.Int64("user_id", user.ID))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the access token by blacklisting its jti for the
// token's remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	claims, err := s.jwtService.ValidateAccessToken(input.AccessToken)
	if err != nil {
		// Expired or malformed tokens have nothing left to revoke.
		return nil
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// GetCurrentUser retrieves the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to look up current user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	info := userInfo(user)
	return &info, nil
}
