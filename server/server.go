package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/services/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *logging.Service
}

func New(cfg *config.Config, logger *logging.Service, db *gorm.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger(logger, db, "/healthz"))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.App.URL},
		AllowCredentials: true,
	}))

	return &Server{
		echo:   e,
		cfg:    cfg,
		logger: logger,
	}
}

// errorHandler is the single point where service errors become HTTP
// responses, so handlers just return errors.
func errorHandler(logger *logging.Service) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := apperr.HTTPStatus(err)
		message := "internal server error"
		var fields map[string]string

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			if status < http.StatusInternalServerError {
				message = appErr.Message
			}
			fields = appErr.Fields
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if status < http.StatusInternalServerError {
				message = fmt.Sprintf("%v", httpErr.Message)
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = RespondError(c, status, message, fields)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("starting server", zap.String("addr", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Group(prefix string, m ...echo.MiddlewareFunc) *echo.Group {
	return s.echo.Group(prefix, m...)
}

func (s *Server) Get(path string, handler echo.HandlerFunc) {
	s.echo.GET(path, handler)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
