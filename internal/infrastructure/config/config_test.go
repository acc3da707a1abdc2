package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, 100, cfg.Storage.DefaultPageSize)
	assert.True(t, cfg.SQLite.InMemory())
	assert.True(t, cfg.Seed.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BOOKCATALOG_SERVER_PORT", "9090")
	t.Setenv("BOOKCATALOG_STORAGE_DRIVER", "mysql")
	t.Setenv("BOOKCATALOG_SEED_ENABLED", "false")
	t.Setenv("BOOKCATALOG_DATABASE_LOC", "Asia/Shanghai")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorageMySQL, cfg.Storage.Driver)
	assert.False(t, cfg.Seed.Enabled)
	assert.Contains(t, cfg.Database.DSN(), "loc=Asia%2FShanghai")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"端口越界", "BOOKCATALOG_SERVER_PORT", "70000"},
		{"未知存储驱动", "BOOKCATALOG_STORAGE_DRIVER", "solr"},
		{"分页大小非法", "BOOKCATALOG_STORAGE_DEFAULT_PAGE_SIZE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
