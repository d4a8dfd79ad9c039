package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shop-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "shop.db", cfg.Database.Path)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.True(t, cfg.Seed.Enabled)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
		assert.Equal(t, time.Minute, cfg.Idempotency.LockTTL)
		assert.Equal(t, "shop-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with SHOP prefix", func(t *testing.T) {
		t.Setenv("SHOP_APP_NAME", "test-app")
		t.Setenv("SHOP_APP_PORT", "9000")
		t.Setenv("SHOP_DATABASE_DRIVER", "Postgres")
		t.Setenv("SHOP_DATABASE_HOST", "testdb.local")
		t.Setenv("SHOP_DATABASE_PORT", "5433")
		t.Setenv("SHOP_DATABASE_DBNAME", "testdb")
		t.Setenv("SHOP_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("SHOP_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("SHOP_SEED_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Seed.Enabled)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("SHOP_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})
}

func TestConfigValidation(t *testing.T) {
	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		v := viper.New()
		v.Set("database.max_open_conns", 5)
		v.Set("database.max_idle_conns", 10)

		_, err := fromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects disabled sslmode for postgres in production", func(t *testing.T) {
		v := viper.New()
		v.Set("app.env", "production")
		v.Set("database.driver", "postgres")

		_, err := fromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("rejects unrestricted swagger in production", func(t *testing.T) {
		v := viper.New()
		v.Set("app.env", "production")
		v.Set("swagger.enabled", true)

		_, err := fromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		v := viper.New()
		v.Set("telemetry.sampling_ratio", 1.5)

		_, err := fromViper(v)
		require.Error(t, err)
	})

	t.Run("accepts sqlite in production", func(t *testing.T) {
		v := viper.New()
		v.Set("app.env", "production")

		cfg, err := fromViper(v)
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("postgres escapes credentials", func(t *testing.T) {
		d := DatabaseConfig{
			Driver:   DriverPostgres,
			Host:     "db",
			Port:     5432,
			User:     "shop",
			Password: "p@ss:word",
			DBName:   "shop",
			SSLMode:  "disable",
		}

		assert.Equal(t, "postgres://shop:p%40ss%3Aword@db:5432/shop?sslmode=disable", d.DSN())
	})

	t.Run("sqlite file enables foreign keys", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverSQLite, Path: "data/shop.db"}

		assert.Equal(t, "file:data/shop.db?_foreign_keys=on&_busy_timeout=5000", d.DSN())
	})

	t.Run("sqlite in-memory stays private to the connection", func(t *testing.T) {
		assert.Equal(t, "file::memory:?_foreign_keys=on", SQLiteDSN(":memory:"))
	})
}
