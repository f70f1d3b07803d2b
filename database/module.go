package database

import (
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Options(
	fx.Provide(ProvideModels),
	fx.Provide(ProvideDatabaseFx),
)

// ProvideModels lists every persisted entity for auto-migration.
func ProvideModels() *ModelsOption {
	return WithModels(
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

func ProvideDatabaseFx(cfg *config.Config, modelsOpt *ModelsOption, logger *logging.Service) (*gorm.DB, error) {
	return ProvideDatabase(*cfg, modelsOpt, logger)
}
