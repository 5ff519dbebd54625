package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/erp-service/internal/domain"
)

const testSecret = "test-secret-key-for-unit-tests"

func testUser() *domain.User {
	return &domain.User{
		ID:    "00000000-0000-0000-0000-000000000001",
		Email: "staff@example.com",
		Role:  domain.RoleManager,
	}
}

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, exp, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", claims.Email)
	assert.Equal(t, domain.RoleManager, claims.Role)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", claims.UserID)
}

func TestTokenManager_WrongSecretRejected(t *testing.T) {
	token, _, err := NewTokenManager(testSecret, 60).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("a-completely-different-secret", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_MalformedRejected(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenManager_ExpiredRejected(t *testing.T) {
	user := testUser()
	claims := &Claims{
		Email:  user.Email,
		Role:   user.Role,
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, 60).ParseToken(signed)
	assert.Error(t, err)
}
