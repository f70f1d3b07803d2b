package handlers

import (
	"net/http"

	"github.com/ak-shop/api/config"
	"github.com/labstack/echo/v4"
)

// setRefreshCookie stores the refresh token in an HttpOnly cookie. Production
// uses SameSite=None with Secure so the cookie survives cross-site frontends;
// development stays on Lax over plain HTTP.
func setRefreshCookie(c echo.Context, cfg *config.Config, token string) {
	cookie := &http.Cookie{
		Name:     cfg.Cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   cfg.RefreshToken.Expiry.Seconds(),
		HttpOnly: true,
	}
	if cfg.App.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}
	c.SetCookie(cookie)
}

func clearRefreshCookie(c echo.Context, cfg *config.Config) {
	cookie := &http.Cookie{
		Name:     cfg.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
	if cfg.App.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}
	c.SetCookie(cookie)
}
