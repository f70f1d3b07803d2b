package handlers

import "go.uber.org/fx"

var Module = fx.Options(
	fx.Provide(NewAuthHandler),
	fx.Provide(NewProductHandler),
	fx.Provide(NewCategoryHandler),
	fx.Provide(NewAttributeHandler),
	fx.Provide(NewCollectionHandler),
	fx.Provide(NewMediaHandler),
	fx.Provide(NewUsersHandler),
	fx.Provide(NewLogsHandler),
	fx.Provide(func(auth *AuthHandler, products *ProductHandler, categories *CategoryHandler, attributes *AttributeHandler, collections *CollectionHandler, media *MediaHandler, users *UsersHandler, logs *LogsHandler) *Handlers {
		return &Handlers{
			Auth:        auth,
			Products:    products,
			Categories:  categories,
			Attributes:  attributes,
			Collections: collections,
			Media:       media,
			Users:       users,
			Logs:        logs,
		}
	}),
	fx.Invoke(RegisterRoutes),
)
