package role

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/middleware/jwtauth"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeAs(t *testing.T, mw echo.MiddlewareFunc, userRole models.Role) error {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if userRole != "" {
		c.Set(jwtauth.ClaimsKey, &jwt.Claims{UserID: models.NewID(), Role: userRole})
	}

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequire(t *testing.T) {
	t.Run("allows listed role", func(t *testing.T) {
		err := invokeAs(t, Require(models.RoleAdmin), models.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("rejects other roles", func(t *testing.T) {
		err := invokeAs(t, Require(models.RoleAdmin), models.RoleCustomer)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("rejects missing claims", func(t *testing.T) {
		err := invokeAs(t, Require(models.RoleAdmin), "")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestRequireAdmin(t *testing.T) {
	for _, allowed := range []models.Role{models.RoleAdmin, models.RoleSuperAdmin, models.RoleStaff} {
		assert.NoError(t, invokeAs(t, RequireAdmin(), allowed), string(allowed))
	}
	assert.ErrorIs(t, invokeAs(t, RequireAdmin(), models.RoleCustomer), apperr.ErrForbidden)
}

func TestRequireSuperAdmin(t *testing.T) {
	assert.NoError(t, invokeAs(t, RequireSuperAdmin(), models.RoleSuperAdmin))
	assert.ErrorIs(t, invokeAs(t, RequireSuperAdmin(), models.RoleAdmin), apperr.ErrForbidden)
}
