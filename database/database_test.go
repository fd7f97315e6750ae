package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPostgresConfigDSN(t *testing.T) {
	cfg := PostgresConfig{
		User: "shop", Password: "secret", DBName: "storefront",
		Host: "db", Port: "5432", SSLMode: "disable", TimeZone: "UTC",
	}
	assert.Equal(t,
		"host=db user=shop password=secret dbname=storefront port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(context.Background(), "", zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	client, err := NewRedisClient(context.Background(), "http://not-redis", zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestClose_NoConnection(t *testing.T) {
	DB = nil
	assert.NoError(t, Close())
}

func TestPostgresConfigFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "storefront")
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_PORT", "6543")

	cfg := PostgresConfigFromEnv()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "6543", cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.NoError(t, cfg.Validate())

	cfg.Password = ""
	assert.EqualError(t, cfg.Validate(), "POSTGRES_PASSWORD not set")
}
