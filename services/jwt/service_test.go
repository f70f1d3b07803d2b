package jwt

import (
	"testing"
	"time"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/testutils"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:    "usr_test_1",
		Email: "test@example.com",
		Role:  models.RoleCustomer,
	}
}

func TestGenerateToken(t *testing.T) {
	service := NewService(testutils.GetTestConfig(), nil)

	tokenString, err := service.GenerateToken(testUser())

	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := service.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "usr_test_1", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.Equal(t, "usr_test_1", claims.Subject)
	assert.Equal(t, "ak-shop-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	cfg := testutils.GetTestConfig()
	service := NewService(cfg, nil)

	t.Run("expired token", func(t *testing.T) {
		expiredCfg := testutils.GetTestConfig()
		expiredCfg.JWT.AccessExpiry = config.Lifetime(-time.Minute)
		expired := NewService(expiredCfg, nil)

		tokenString, err := expired.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		otherCfg := testutils.GetTestConfig()
		otherCfg.JWT.Secret = "completely-different-secret-key!"
		other := NewService(otherCfg, nil)

		tokenString, err := other.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: "usr_test_1"})
		tokenString, err := token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.Error(t, err)
	})
}

func TestAccessExpirySeconds(t *testing.T) {
	service := NewService(testutils.GetTestConfig(), nil)

	assert.Equal(t, 900, service.AccessExpirySeconds())
}
