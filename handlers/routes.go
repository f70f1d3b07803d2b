package handlers

import (
	"net/http"
	"time"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/middleware/jwtauth"
	"github.com/ak-shop/api/middleware/ratelimit"
	"github.com/ak-shop/api/middleware/role"
	"github.com/ak-shop/api/openapi"
	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/jwt"
	"github.com/labstack/echo/v4"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Auth        *AuthHandler
	Products    *ProductHandler
	Categories  *CategoryHandler
	Attributes  *AttributeHandler
	Collections *CollectionHandler
	Media       *MediaHandler
	Users       *UsersHandler
	Logs        *LogsHandler
}

func RegisterRoutes(srv *server.Server, h *Handlers, jwtSvc *jwt.Service, cfg *config.Config, docs *openapi.OpenAPI) {
	srv.Echo().Validator = NewValidator()

	srv.Get("/healthz", func(c echo.Context) error {
		return server.Respond(c, http.StatusOK, "ok", nil)
	})
	srv.Get("/docs/openapi.json", docs.JSONHandler())

	requireJWT := jwtauth.RequireJWT(jwtSvc)
	requireAdmin := role.RequireAdmin()

	limiter := ratelimit.NewMemoryStore()
	authLimit := func(prefix string) echo.MiddlewareFunc {
		return ratelimit.Middleware(ratelimit.Config{
			Store:     limiter,
			Rate:      10,
			Period:    time.Minute,
			KeyPrefix: prefix,
		})
	}

	api := srv.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register, authLimit("register"))
	authGroup.POST("/login", h.Auth.Login, authLimit("login"))
	authGroup.POST("/google", h.Auth.GoogleLogin, authLimit("google"))
	authGroup.POST("/refresh-token", h.Auth.RefreshToken)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.POST("/verify-email", h.Auth.VerifyEmail)
	authGroup.POST("/resend-verification", h.Auth.ResendVerification, authLimit("resend"))
	authGroup.POST("/forgot-password", h.Auth.ForgotPassword, authLimit("forgot"))
	authGroup.POST("/reset-password", h.Auth.ResetPassword)
	authGroup.GET("/me", h.Auth.Me, requireJWT)

	// Catalog reads are public; writes are staff and above.
	products := api.Group("/products")
	products.GET("", h.Products.List)
	products.GET("/:id", h.Products.Get)
	products.GET("/slug/:slug", h.Products.GetBySlug)
	products.POST("", h.Products.Create, requireJWT, requireAdmin)
	products.PUT("/:id", h.Products.Update, requireJWT, requireAdmin)
	products.DELETE("/:id", h.Products.Delete, requireJWT, requireAdmin)
	products.POST("/bulk-delete", h.Products.DeleteMany, requireJWT, requireAdmin)

	categories := api.Group("/categories")
	categories.GET("", h.Categories.List)
	categories.GET("/:id", h.Categories.Get)
	categories.POST("", h.Categories.Create, requireJWT, requireAdmin)
	categories.PUT("/:id", h.Categories.Update, requireJWT, requireAdmin)
	categories.DELETE("/:id", h.Categories.Delete, requireJWT, requireAdmin)
	categories.POST("/bulk-delete", h.Categories.DeleteMany, requireJWT, requireAdmin)

	attributes := api.Group("/attributes")
	attributes.GET("", h.Attributes.List)
	attributes.GET("/:id", h.Attributes.Get)
	attributes.POST("", h.Attributes.Create, requireJWT, requireAdmin)
	attributes.POST("/:id/values", h.Attributes.AddValue, requireJWT, requireAdmin)
	attributes.DELETE("/:id", h.Attributes.Delete, requireJWT, requireAdmin)
	attributes.POST("/bulk-delete", h.Attributes.DeleteMany, requireJWT, requireAdmin)

	collections := api.Group("/collections")
	collections.GET("", h.Collections.List)
	collections.GET("/:id", h.Collections.Get)
	collections.POST("", h.Collections.Create, requireJWT, requireAdmin)
	collections.PUT("/:id", h.Collections.Update, requireJWT, requireAdmin)
	collections.DELETE("/:id", h.Collections.Delete, requireJWT, requireAdmin)
	collections.POST("/:id/products", h.Collections.AddProducts, requireJWT, requireAdmin)
	collections.DELETE("/:id/products/:productId", h.Collections.RemoveProduct, requireJWT, requireAdmin)

	media := api.Group("/media", requireJWT, requireAdmin)
	media.POST("/upload", h.Media.Upload)
	media.GET("", h.Media.List)
	media.GET("/:id", h.Media.Get)
	media.PATCH("/:id", h.Media.Update)
	media.DELETE("/:id", h.Media.Delete)
	media.POST("/bulk-delete", h.Media.DeleteMany)

	folders := api.Group("/media-folders", requireJWT, requireAdmin)
	folders.GET("", h.Media.ListFolders)
	folders.POST("", h.Media.CreateFolder)
	folders.DELETE("/:id", h.Media.DeleteFolder)

	adminUsers := api.Group("/users", requireJWT, requireAdmin)
	adminUsers.GET("", h.Users.List)
	adminUsers.GET("/:id", h.Users.Get)
	adminUsers.PATCH("/:id/role", h.Users.SetRole)
	adminUsers.DELETE("/:id", h.Users.Delete)

	adminLogs := api.Group("/logs", requireJWT, requireAdmin)
	adminLogs.GET("", h.Logs.List)
	adminLogs.DELETE("", h.Logs.Purge)

	documentRoutes(docs, cfg)
}
