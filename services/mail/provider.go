package mail

import (
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/services/logging"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(func(cfg *config.Config, logger *logging.Service) (*Service, error) {
		return NewService(&cfg.Mail, logger)
	}),
)
