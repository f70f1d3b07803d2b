// Package app assembles the application from its fx modules and owns the
// process lifecycle.
package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/database"
	"github.com/ak-shop/api/handlers"
	"github.com/ak-shop/api/openapi"
	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/auth"
	"github.com/ak-shop/api/services/catalog"
	"github.com/ak-shop/api/services/collection"
	"github.com/ak-shop/api/services/jwt"
	"github.com/ak-shop/api/services/logging"
	"github.com/ak-shop/api/services/logs"
	"github.com/ak-shop/api/services/mail"
	"github.com/ak-shop/api/services/media"
	"github.com/ak-shop/api/services/oauth"
	"github.com/ak-shop/api/services/refreshtoken"
	"github.com/ak-shop/api/services/users"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	fx     *fx.App
	config *config.Config
	logger *logging.Service
	db     *gorm.DB
	server *server.Server
}

// New wires every module together. Extra fx options let tests swap or add
// dependencies.
func New(cfg *config.Config, extra ...fx.Option) *App {
	app := &App{config: cfg}

	opts := []fx.Option{
		config.NewProvider(cfg),
		logging.Module,
		database.Module,
		server.Module,
		openapi.Module,
		jwt.Module,
		refreshtoken.Module,
		mail.Module,
		auth.Module,
		oauth.Module,
		catalog.Module,
		collection.Module,
		media.Module,
		users.Module,
		logs.Module,
		handlers.Module,
		fx.Populate(&app.logger, &app.db, &app.server),
		fx.WithLogger(func(logger *logging.Service) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Logger()}
		}),
	}
	opts = append(opts, extra...)

	app.fx = fx.New(opts...)
	return app
}

func (a *App) Start(ctx context.Context) error {
	return a.fx.Start(ctx)
}

func (a *App) Stop(ctx context.Context) error {
	return a.fx.Stop(ctx)
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() {
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		log.Fatalf("failed to start application: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	a.logger.Info("shutting down", zap.String("signal", sig.String()))

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStop()
	if err := a.Stop(stopCtx); err != nil {
		a.logger.Error("shutdown did not complete cleanly", zap.Error(err))
	}
}

func (a *App) Config() *config.Config { return a.config }

func (a *App) Logger() *logging.Service { return a.logger }

func (a *App) DB() *gorm.DB { return a.db }

func (a *App) Server() *server.Server { return a.server }
