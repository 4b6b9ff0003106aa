package auth

import (
	"testing"
	"time"

	"github.com/billing/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(accessTTL, refreshTTL time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: refreshTTL,
		Issuer:                 "billing-test",
	})
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	svc := newTestService(15*time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair(42, "clerk@example.com", "staff")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "clerk@example.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "billing-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	refreshClaims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), refreshClaims.UserID)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
	// Refresh tokens stay minimal
	assert.Empty(t, refreshClaims.Email)
	assert.Empty(t, refreshClaims.Role)
}

func TestValidateTokenTypeMismatch(t *testing.T) {
	svc := newTestService(15*time.Minute, 24*time.Hour)
	pair, err := svc.GenerateTokenPair(1, "a@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	// Tokens are signed with different secrets, so the access token fails
	// refresh validation before the type check is reached.
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-1*time.Minute, 24*time.Hour)
	pair, err := svc.GenerateTokenPair(1, "a@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService(15*time.Minute, 24*time.Hour)

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	svc := newTestService(15*time.Minute, 24*time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-secret-key",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "billing-test",
	})

	pair, err := other.GenerateTokenPair(1, "a@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshSecretFallsBackToAccessSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "only-one-secret-configured-here!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "billing-test",
	})

	pair, err := svc.GenerateTokenPair(5, "b@example.com", "staff")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestClaimsRoleHelpers(t *testing.T) {
	c := &Claims{Role: "admin"}
	assert.True(t, c.HasRole("admin"))
	assert.False(t, c.HasRole("staff"))
	assert.True(t, c.HasAnyRole("staff", "admin"))
	assert.False(t, c.HasAnyRole("staff", "viewer"))
}

func TestGetRemainingTTL(t *testing.T) {
	svc := newTestService(15*time.Minute, 24*time.Hour)
	pair, err := svc.GenerateTokenPair(1, "a@example.com", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)

	expired := &Claims{}
	assert.Equal(t, time.Duration(0), expired.GetRemainingTTL())
}
