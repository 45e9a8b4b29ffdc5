package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "botiquin", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 90, cfg.Inventory.ExpiryWarningDays)
	assert.Equal(t, 300*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_URL la caché queda deshabilitada")
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("EXPIRY_WARNING_DAYS", "30")
	v.Set("REDIS_URL", "redis://localhost:6379/0")
	v.Set("DB_PORT", "no-es-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30, cfg.Inventory.ExpiryWarningDays)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5432, cfg.DB.Port, "un valor no numérico cae al default")
}

func TestFromViper_NegativeWarningDays(t *testing.T) {
	v := viper.New()
	v.Set("EXPIRY_WARNING_DAYS", -1)

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "capitán", Password: "p@ss:word", DBName: "botiquin", SSLMode: "disable"}
	dsn := c.ConnectionString()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%3Aword", "la contraseña se codifica")
	assert.Contains(t, dsn, "sslmode=disable")

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
