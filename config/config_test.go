package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "BOLT_PATH", "STORE_KEY", "CURRENCY", "DB_PORT", "ADMIN_ID", "LOG_MODE"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreDriverBolt, cfg.Store.Driver)
	require.Equal(t, "menu.db", cfg.Store.BoltPath)
	require.Equal(t, "menuItems", cfg.Store.Key)
	require.Equal(t, "R", cfg.Menu.Currency)
	require.Equal(t, 5432, cfg.DB.Port)
	require.Equal(t, int64(0), cfg.Telegram.AdminID)
	require.Equal(t, "development", cfg.Log.Mode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreDriverPostgres)
	t.Setenv("STORE_KEY", "kitchen")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("CURRENCY", "$")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	require.Equal(t, "kitchen", cfg.Store.Key)
	require.Equal(t, 6543, cfg.DB.Port)
	require.Equal(t, int64(42), cfg.Telegram.AdminID)
	require.Equal(t, "$", cfg.Menu.Currency)
}
