package handlers

import (
	"net/http"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/openapi"
)

func documentRoutes(docs *openapi.OpenAPI, cfg *config.Config) {
	docs.Description("REST API for the "+cfg.App.Name+" storefront and admin panel.").
		Server(cfg.App.URL, "primary").
		Tag("auth", "Registration, login and session management").
		Tag("catalog", "Products, categories and attributes").
		Tag("collections", "Curated product groupings").
		Tag("media", "File storage and folders").
		Tag("admin", "User and request log administration").
		BearerAuth("bearerAuth", "Short lived access token from /auth/login")

	type route struct {
		method, path, summary, tag string
		status                     int
		secured                    bool
	}
	routes := []route{
		{http.MethodPost, "/api/v1/auth/register", "Register a new account", "auth", http.StatusOK, false},
		{http.MethodPost, "/api/v1/auth/login", "Log in with email and password", "auth", http.StatusOK, false},
		{http.MethodPost, "/api/v1/auth/google", "Log in with a Google identity", "auth", http.StatusOK, false},
		{http.MethodPost, "/api/v1/auth/refresh-token", "Rotate the refresh token cookie", "auth", http.StatusOK, false},
		{http.MethodPost, "/api/v1/auth/logout", "End the current session", "auth", http.StatusOK, false},
		{http.MethodPost, "/api/v1/auth/verify-email", "Verify an email address", "auth", http.StatusOK, false},
		{http.MethodPost, "/api/v1/auth/resend-verification", "Resend the verification email", "auth", http.StatusOK, false},
		{http.MethodPost, "/api/v1/auth/forgot-password", "Request a password reset email", "auth", http.StatusOK, false},
		{http.MethodPost, "/api/v1/auth/reset-password", "Reset the password with a token", "auth", http.StatusOK, false},
		{http.MethodGet, "/api/v1/auth/me", "Fetch the authenticated user", "auth", http.StatusOK, true},

		{http.MethodGet, "/api/v1/products", "List products", "catalog", http.StatusOK, false},
		{http.MethodGet, "/api/v1/products/:id", "Fetch a product", "catalog", http.StatusOK, false},
		{http.MethodGet, "/api/v1/products/slug/:slug", "Fetch a product by slug", "catalog", http.StatusOK, false},
		{http.MethodPost, "/api/v1/products", "Create a product", "catalog", http.StatusCreated, true},
		{http.MethodPut, "/api/v1/products/:id", "Update a product", "catalog", http.StatusOK, true},
		{http.MethodDelete, "/api/v1/products/:id", "Delete a product", "catalog", http.StatusOK, true},
		{http.MethodPost, "/api/v1/products/bulk-delete", "Delete multiple products", "catalog", http.StatusOK, true},

		{http.MethodGet, "/api/v1/categories", "List categories", "catalog", http.StatusOK, false},
		{http.MethodGet, "/api/v1/categories/:id", "Fetch a category", "catalog", http.StatusOK, false},
		{http.MethodPost, "/api/v1/categories", "Create a category", "catalog", http.StatusCreated, true},
		{http.MethodPut, "/api/v1/categories/:id", "Update a category", "catalog", http.StatusOK, true},
		{http.MethodDelete, "/api/v1/categories/:id", "Delete a category", "catalog", http.StatusOK, true},
		{http.MethodPost, "/api/v1/categories/bulk-delete", "Delete multiple categories", "catalog", http.StatusOK, true},

		{http.MethodGet, "/api/v1/attributes", "List attributes", "catalog", http.StatusOK, false},
		{http.MethodGet, "/api/v1/attributes/:id", "Fetch an attribute", "catalog", http.StatusOK, false},
		{http.MethodPost, "/api/v1/attributes", "Create an attribute", "catalog", http.StatusCreated, true},
		{http.MethodPost, "/api/v1/attributes/:id/values", "Add an attribute value", "catalog", http.StatusCreated, true},
		{http.MethodDelete, "/api/v1/attributes/:id", "Delete an attribute", "catalog", http.StatusOK, true},
		{http.MethodPost, "/api/v1/attributes/bulk-delete", "Delete multiple attributes", "catalog", http.StatusOK, true},

		{http.MethodGet, "/api/v1/collections", "List collections", "collections", http.StatusOK, false},
		{http.MethodGet, "/api/v1/collections/:id", "Fetch a collection", "collections", http.StatusOK, false},
		{http.MethodPost, "/api/v1/collections", "Create a collection", "collections", http.StatusCreated, true},
		{http.MethodPut, "/api/v1/collections/:id", "Update a collection", "collections", http.StatusOK, true},
		{http.MethodDelete, "/api/v1/collections/:id", "Delete a collection", "collections", http.StatusOK, true},
		{http.MethodPost, "/api/v1/collections/:id/products", "Add products to a collection", "collections", http.StatusOK, true},
		{http.MethodDelete, "/api/v1/collections/:id/products/:productId", "Remove a product from a collection", "collections", http.StatusOK, true},

		{http.MethodPost, "/api/v1/media/upload", "Upload files", "media", http.StatusCreated, true},
		{http.MethodGet, "/api/v1/media", "List media", "media", http.StatusOK, true},
		{http.MethodGet, "/api/v1/media/:id", "Fetch a media item", "media", http.StatusOK, true},
		{http.MethodPatch, "/api/v1/media/:id", "Update media metadata", "media", http.StatusOK, true},
		{http.MethodDelete, "/api/v1/media/:id", "Delete a media item", "media", http.StatusOK, true},
		{http.MethodPost, "/api/v1/media/bulk-delete", "Delete multiple media items", "media", http.StatusOK, true},
		{http.MethodGet, "/api/v1/media-folders", "List folders", "media", http.StatusOK, true},
		{http.MethodPost, "/api/v1/media-folders", "Create a folder", "media", http.StatusCreated, true},
		{http.MethodDelete, "/api/v1/media-folders/:id", "Delete a folder", "media", http.StatusOK, true},

		{http.MethodGet, "/api/v1/users", "List users", "admin", http.StatusOK, true},
		{http.MethodGet, "/api/v1/users/:id", "Fetch a user", "admin", http.StatusOK, true},
		{http.MethodPatch, "/api/v1/users/:id/role", "Change a user's role", "admin", http.StatusOK, true},
		{http.MethodDelete, "/api/v1/users/:id", "Delete a user", "admin", http.StatusOK, true},
		{http.MethodGet, "/api/v1/logs", "List request logs", "admin", http.StatusOK, true},
		{http.MethodDelete, "/api/v1/logs", "Purge old request logs", "admin", http.StatusOK, true},
	}

	for _, r := range routes {
		doc := docs.Document(r.method, r.path).
			Summary(r.summary).
			Tags(r.tag).
			Response(r.status, http.StatusText(r.status))
		if r.secured {
			doc.Secured("bearerAuth").Response(http.StatusUnauthorized, "Unauthorized")
		}
		doc.Add()
	}
}
