package logging

import (
	"github.com/ak-shop/api/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequestLogger logs every request through zap and, when db is non-nil,
// persists a RequestLog row so admins can query the trail later.
// Persistence failures are logged and never fail the request.
func RequestLogger(logger *Service, db *gorm.DB, skipPaths ...string) echo.MiddlewareFunc {
	skipMap := make(map[string]bool)
	for _, path := range skipPaths {
		skipMap[path] = true
	}

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		Skipper: func(c echo.Context) bool {
			return skipMap[c.Request().URL.Path]
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("user_agent", v.UserAgent),
			}

			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			switch {
			case v.Status >= 500:
				logger.Error("server error", fields...)
			case v.Status >= 400:
				logger.Warn("client error", fields...)
			default:
				logger.Info("request", fields...)
			}

			if db != nil {
				entry := models.RequestLog{
					Method:    v.Method,
					Path:      c.Request().URL.Path,
					Status:    v.Status,
					LatencyMs: v.Latency.Milliseconds(),
					IP:        v.RemoteIP,
					UserAgent: v.UserAgent,
				}
				if err := db.Create(&entry).Error; err != nil {
					logger.Error("failed to persist request log", zap.Error(err))
				}
			}

			return nil
		},
	})
}
