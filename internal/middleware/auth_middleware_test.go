package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/pkg/auth"
)

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "classhub-test",
	})
}

func runJWTAuth(t *testing.T, jwtService *auth.JWTService, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/classes", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	NewAuthMiddleware(jwtService).JWTAuth()(c)
	return c, w
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	pair, err := jwtService.GenerateTokenPair(&models.User{
		ID:       7,
		Email:    "teacher@classhub.dev",
		RoleType: models.RoleTeacher,
	})
	require.NoError(t, err)

	c, w := runJWTAuth(t, jwtService, "Bearer "+pair.AccessToken)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), c.GetInt64("userID"))
	assert.Equal(t, "teacher@classhub.dev", c.GetString("email"))
	assert.Equal(t, string(models.RoleTeacher), c.GetString("roleType"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	c, w := runJWTAuth(t, newTestJWTService(time.Hour), "")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	pair, err := jwtService.GenerateTokenPair(&models.User{
		ID:       7,
		Email:    "teacher@classhub.dev",
		RoleType: models.RoleTeacher,
	})
	require.NoError(t, err)

	c, w := runJWTAuth(t, jwtService, "Bearer "+pair.AccessToken)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(dto.ErrorCodeExpiredToken))
}

func TestJWTAuthGarbageToken(t *testing.T) {
	c, w := runJWTAuth(t, newTestJWTService(time.Hour), "Bearer not-a-token")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(dto.ErrorCodeInvalidToken))
}

func TestRoleRequired(t *testing.T) {
	m := NewAuthMiddleware(newTestJWTService(time.Hour))

	run := func(role interface{}, required models.RoleType) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if role != nil {
			c.Set("roleType", role)
		}
		m.RoleRequired(required)(c)
		return c, w
	}

	c, w := run(string(models.RoleTeacher), models.RoleTeacher)
	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = run(string(models.RoleStudent), models.RoleTeacher)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Role check without a preceding JWTAuth run
	c, w = run(nil, models.RoleTeacher)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
