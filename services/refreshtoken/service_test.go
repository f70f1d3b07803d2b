package refreshtoken

import (
	"testing"
	"time"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t, &models.User{}, &models.RefreshToken{})
	return NewService(db, testutils.GetTestConfig(), nil), db
}

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: "test@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestIssue(t *testing.T) {
	service, db := setupService(t)
	user := createUser(t, db)

	token, err := service.Issue(user.ID, Metadata{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		IP:        "192.0.2.1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, user.ID, token.UserID)
	assert.False(t, token.Revoked)
	assert.Nil(t, token.ReplacedByToken)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), token.ExpiresAt, time.Minute)
	require.NotNil(t, token.UserAgent)
	assert.Contains(t, *token.UserAgent, "Chrome")
	require.NotNil(t, token.IP)
	assert.Equal(t, "192.0.2.1", *token.IP)
}

func TestRotate(t *testing.T) {
	t.Run("active token is revoked and replaced", func(t *testing.T) {
		service, db := setupService(t)
		user := createUser(t, db)

		old, err := service.Issue(user.ID, Metadata{})
		require.NoError(t, err)

		next, err := service.Rotate(old.Token, Metadata{})
		require.NoError(t, err)
		assert.NotEqual(t, old.Token, next.Token)
		assert.Equal(t, user.ID, next.UserID)

		var stored models.RefreshToken
		require.NoError(t, db.Where("token = ?", old.Token).First(&stored).Error)
		assert.True(t, stored.Revoked)
		require.NotNil(t, stored.ReplacedByToken)
		assert.Equal(t, next.Token, *stored.ReplacedByToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		service, _ := setupService(t)

		_, err := service.Rotate("no-such-token", Metadata{})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("revoked token rejected without cascading", func(t *testing.T) {
		service, db := setupService(t)
		user := createUser(t, db)

		old, err := service.Issue(user.ID, Metadata{})
		require.NoError(t, err)
		next, err := service.Rotate(old.Token, Metadata{})
		require.NoError(t, err)

		// Replaying the rotated token must fail.
		_, err = service.Rotate(old.Token, Metadata{})
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)

		// The replacement stays usable.
		var stored models.RefreshToken
		require.NoError(t, db.Where("token = ?", next.Token).First(&stored).Error)
		assert.False(t, stored.Revoked)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		service, db := setupService(t)
		user := createUser(t, db)

		token, err := service.Issue(user.ID, Metadata{})
		require.NoError(t, err)
		require.NoError(t, db.Model(token).Update("expires_at", time.Now().Add(-time.Minute)).Error)

		_, err = service.Rotate(token.Token, Metadata{})
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)

		// Failed rotation must not mutate the row.
		var stored models.RefreshToken
		require.NoError(t, db.Where("token = ?", token.Token).First(&stored).Error)
		assert.False(t, stored.Revoked)
	})
}

func TestRevoke(t *testing.T) {
	t.Run("deletes the row", func(t *testing.T) {
		service, db := setupService(t)
		user := createUser(t, db)

		token, err := service.Issue(user.ID, Metadata{})
		require.NoError(t, err)

		require.NoError(t, service.Revoke(token.Token))

		var count int64
		require.NoError(t, db.Model(&models.RefreshToken{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown token", func(t *testing.T) {
		service, _ := setupService(t)

		err := service.Revoke("no-such-token")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRevokeAllForUser(t *testing.T) {
	service, db := setupService(t)
	user := createUser(t, db)
	other := &models.User{Name: "Other", Email: "other@example.com"}
	require.NoError(t, db.Create(other).Error)

	_, err := service.Issue(user.ID, Metadata{})
	require.NoError(t, err)
	_, err = service.Issue(user.ID, Metadata{})
	require.NoError(t, err)
	kept, err := service.Issue(other.ID, Metadata{})
	require.NoError(t, err)

	require.NoError(t, service.RevokeAllForUser(user.ID))

	var remaining []models.RefreshToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.Token, remaining[0].Token)
}

func TestCleanupExpired(t *testing.T) {
	service, db := setupService(t)
	user := createUser(t, db)

	active, err := service.Issue(user.ID, Metadata{})
	require.NoError(t, err)

	expired, err := service.Issue(user.ID, Metadata{})
	require.NoError(t, err)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-time.Hour)).Error)

	removed, err := service.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var remaining []models.RefreshToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, active.Token, remaining[0].Token)
}

func TestExpiryFromConfig(t *testing.T) {
	db := testutils.SetupTestDB(t, &models.User{}, &models.RefreshToken{})
	cfg := testutils.GetTestConfig()
	cfg.RefreshToken.Expiry = config.Lifetime(30 * time.Minute)
	service := NewService(db, cfg, nil)
	user := createUser(t, db)

	token, err := service.Issue(user.ID, Metadata{})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), token.ExpiresAt, time.Minute)
}
