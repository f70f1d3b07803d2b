package catalog

import "go.uber.org/fx"

var Module = fx.Options(
	fx.Provide(NewCategoryService),
	fx.Provide(NewProductService),
	fx.Provide(NewAttributeService),
)
