package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demir/classhub/internal/app/models"
)

func testService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "classhub-test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Email:    "teacher@classhub.dev",
		RoleType: models.RoleTeacher,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testService(time.Hour)

	pair, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 3600, pair.ExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "teacher@classhub.dev", claims.Email)
	assert.Equal(t, string(models.RoleTeacher), claims.RoleType)
	assert.Equal(t, "classhub-test", claims.Issuer)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := testService(time.Hour)

	first, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	second, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestValidateExpiredToken(t *testing.T) {
	// Negative lifetime issues a token that is already expired
	svc := testService(-time.Minute)

	pair, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := testService(time.Hour)
	verifier := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "classhub-test",
	})

	pair, err := issuer.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := testService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAndExtractClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateClaimsRequirePrincipal(t *testing.T) {
	svc := testService(time.Hour)

	pair, err := svc.GenerateTokenPair(&models.User{Email: "ghost@classhub.dev"})
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// Missing prefix is tolerated
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
