package database_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/pkg/database"
)

func TestConfigDisabledSkipsValidation(t *testing.T) {
	cfg := &database.Config{}
	require.NoError(t, cfg.Finalize(nil))

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
}

func TestConfigEnabledRequiresUser(t *testing.T) {
	cfg := &database.Config{Enabled: true}
	assert.Error(t, cfg.Finalize(nil))
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("TEST_DB_ENABLED", "true")
	t.Setenv("TEST_DB_USER", "heritage")
	t.Setenv("TEST_DB_PORT", "6543")

	cfg := &database.Config{}
	require.NoError(t, cfg.Finalize(&database.Env{
		Enabled: "TEST_DB_ENABLED",
		User:    "TEST_DB_USER",
		Port:    "TEST_DB_PORT",
	}))

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "heritage", cfg.User)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ConnTimeoutDuration())
}

func TestConfigEnvInvalid(t *testing.T) {
	t.Setenv("TEST_DB_ENABLED", "maybe")

	cfg := &database.Config{}
	assert.Error(t, cfg.Finalize(&database.Env{Enabled: "TEST_DB_ENABLED"}))
}

func TestDsnEscapesCredentials(t *testing.T) {
	cfg := &database.Config{Host: "db", Port: 5432, Name: "heritage", User: "app", Password: "p@ss word", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/heritage?sslmode=disable", cfg.Dsn())
}

func TestMerge(t *testing.T) {
	base := &database.Config{Host: "localhost", User: "app"}
	base.Merge(&database.Config{Enabled: true, Host: "db.internal"})

	assert.True(t, base.Enabled)
	assert.Equal(t, "db.internal", base.Host)
	assert.Equal(t, "app", base.User)
}

func TestNewDefersConnection(t *testing.T) {
	cfg := &database.Config{Enabled: true, User: "app"}
	require.NoError(t, cfg.Finalize(nil))

	db, err := database.New(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.NotNil(t, db.Connection())
	require.NoError(t, db.Connection().Close())
}
