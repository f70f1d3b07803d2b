package testutils

import (
	"testing"

	"github.com/ak-shop/api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T, entities ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	if len(entities) > 0 {
		require.NoError(t, db.AutoMigrate(entities...))
	}

	return db
}

// SetupFullTestDB migrates every entity, for tests spanning subsystems.
func SetupFullTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	return SetupTestDB(t,
		&models.User{},
		&models.Profile{},
		&models.Address{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Attribute{},
		&models.AttributeValue{},
		&models.VariantAttributeValue{},
		&models.Collection{},
		&models.ProductCollection{},
		&models.MediaFolder{},
		&models.Media{},
		&models.RequestLog{},
	)
}
