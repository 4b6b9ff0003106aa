package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/billing/backend/internal/infrastructure/auth"
	"github.com/billing/backend/internal/infrastructure/logger"
	"github.com/billing/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Keys under which the middleware stores claims on the gin context.
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig configures the authentication middleware.
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist, when set, rejects tokens revoked by logout.
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths and SkipPathPrefixes bypass authentication entirely.
	SkipPaths        []string
	SkipPathPrefixes []string
	// OnError replaces the default 401 response when set.
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// DefaultJWTConfig skips the health and auth bootstrap endpoints, which
// must be reachable without a token.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// JWTAuthMiddleware authenticates requests with the default configuration.
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig authenticates requests by validating the
// bearer token, then stores the claims on both the gin context and the
// request context so handlers and the logger can see the caller.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldSkipAuth(cfg, c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenString, err := bearerToken(c)
		if err != nil {
			rejectUnauthenticated(c, cfg, err, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			rejectUnauthenticated(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// Fail open on lookup errors so a blacklist outage does
				// not take down every authenticated endpoint.
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			case blacklisted:
				rejectUnauthenticated(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTEmailKey, claims.Email)
		c.Set(JWTRoleKey, claims.Role)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, log, strconv.FormatInt(claims.UserID, 10))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func shouldSkipAuth(cfg JWTMiddlewareConfig, path string) bool {
	for _, skipPath := range cfg.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

// authFailureCode maps a validation error to the code and message the
// client sees. Every branch stays a 401; the code tells clients whether
// refreshing the token is worth trying.
func authFailureCode(err error) (code, message string) {
	switch err {
	case auth.ErrExpiredToken:
		return "TOKEN_EXPIRED", "Token has expired"
	case auth.ErrInvalidToken:
		return "INVALID_TOKEN", "Invalid token"
	case auth.ErrInvalidTokenType:
		return "INVALID_TOKEN_TYPE", "Invalid token type"
	case auth.ErrTokenNotYetValid:
		return "TOKEN_NOT_VALID", "Token is not yet valid"
	case auth.ErrTokenBlacklisted:
		return "TOKEN_REVOKED", "Token has been revoked"
	default:
		return "UNAUTHORIZED", "Authentication required"
	}
}

func rejectUnauthenticated(c *gin.Context, cfg JWTMiddlewareConfig, err error, reason string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code, message := authFailureCode(err)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetJWTClaims returns the authenticated caller's claims, or nil when the
// request did not pass authentication.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID returns the authenticated user ID, or 0 when the request
// is unauthenticated.
func GetJWTUserID(c *gin.Context) int64 {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(int64); ok {
			return id
		}
	}
	return 0
}

// GetJWTRole returns the authenticated caller's role, or "".
func GetJWTRole(c *gin.Context) string {
	if role, exists := c.Get(JWTRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetJWTEmail returns the authenticated caller's email, or "".
func GetJWTEmail(c *gin.Context) string {
	if email, exists := c.Get(JWTEmailKey); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}
