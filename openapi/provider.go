package openapi

import (
	"github.com/ak-shop/api/config"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(func(cfg *config.Config) *OpenAPI {
		return New(cfg.App.Name+" API", "1.0.0")
	}),
)
