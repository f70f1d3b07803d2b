package app

import (
	"context"
	"testing"
	"time"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppConfig() *config.Config {
	cfg := testutils.GetTestConfig()
	cfg.Server = config.ServerConfig{Host: "127.0.0.1", Port: "0"}
	cfg.Database = config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", AutoMigrate: true}
	cfg.Log = config.LogConfig{Level: "error", Format: "json", Output: "stdout"}
	return cfg
}

func TestAppLifecycle(t *testing.T) {
	application := New(testAppConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, application.Start(ctx))
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		require.NoError(t, application.Stop(stopCtx))
	}()

	assert.NotNil(t, application.Logger())
	assert.NotNil(t, application.DB())
	assert.NotNil(t, application.Server())
	assert.Equal(t, "ak-shop-test", application.Config().App.Name)
}

func TestAppWiringMigratesModels(t *testing.T) {
	application := New(testAppConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, application.Start(ctx))
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = application.Stop(stopCtx)
	}()

	for _, table := range []string{"users", "products", "media", "request_logs"} {
		assert.True(t, application.DB().Migrator().HasTable(table), table)
	}
}
