package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "web", cfg.WebDir)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, "@hourly", cfg.SessionCleanupSchedule)
	assert.False(t, cfg.SSOEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/wb.db")
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/wb.db", cfg.SQLitePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_BadBool(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_PRETTY", "maybe")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"postgres without url", Config{StoreDriver: DriverPostgres}, true},
		{"postgres with url", Config{StoreDriver: DriverPostgres, DatabaseURL: "postgres://x"}, false},
		{"sqlite without path", Config{StoreDriver: DriverSQLite}, true},
		{"file without dir", Config{StoreDriver: DriverFile}, true},
		{"file with dir", Config{StoreDriver: DriverFile, DataDir: "data"}, false},
		{"unknown driver", Config{StoreDriver: "mongo"}, true},
		{"user without password", Config{StoreDriver: DriverMemory, InitialUser: "ann"}, true},
		{"user with password", Config{StoreDriver: DriverMemory, InitialUser: "ann", InitialPassword: "pw"}, false},
		{"oidc missing client", Config{StoreDriver: DriverMemory, OIDCIssuer: "https://id.test"}, true},
		{"oidc complete", Config{
			StoreDriver:     DriverMemory,
			OIDCIssuer:      "https://id.test",
			OIDCClientID:    "wb",
			OIDCRedirectURL: "https://wb.test/api/auth/sso/callback",
		}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
