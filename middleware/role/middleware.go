// Package role gates routes on the role carried in verified JWT claims.
// It must run after jwtauth.RequireJWT.
package role

import (
	"slices"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/middleware/jwtauth"
	"github.com/ak-shop/api/models"
	"github.com/labstack/echo/v4"
)

// Require allows only the listed roles through.
func Require(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := jwtauth.GetClaims(c)
			if claims == nil {
				return apperr.Unauthorized("authentication required")
			}

			if !slices.Contains(roles, claims.Role) {
				return apperr.Forbidden("insufficient permissions")
			}

			return next(c)
		}
	}
}

// RequireAdmin admits staff level and above.
func RequireAdmin() echo.MiddlewareFunc {
	return Require(models.RoleAdmin, models.RoleSuperAdmin, models.RoleStaff)
}

// RequireSuperAdmin admits super admins only.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return Require(models.RoleSuperAdmin)
}
