package auth

import (
	"github.com/ak-shop/api/services/mail"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(func(svc *Service, mailService *mail.Service) error {
		svc.SetMailService(mailService)
		return svc.EnsureSuperAdmin()
	}),
)
