package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.CSRF)
	assert.Equal(t, []string{"forecasting", "vision"}, cfg.Modules)
	assert.Equal(t, 5*time.Second, cfg.Client.NotifyTTL)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_CSRF", "false")
	t.Setenv("MODULES", " Vision ")
	t.Setenv("NOTIFY_TTL", "2s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.HTTP.CSRF)
	assert.Equal(t, []string{"vision"}, cfg.Modules)
	assert.Equal(t, 2*time.Second, cfg.Client.NotifyTTL)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "retail", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/retail?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_PoolDeConexiones(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.Equal(t, 15*time.Minute, cfg.DB.MaxConnLifetime)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Empty(t, cfg.DB.Resolver, "sin DNS externo por defecto")

	t.Setenv("DB_MIN_CONNS", "11")
	_, err = config.Load()
	assert.Error(t, err)
}
