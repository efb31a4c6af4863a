package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restaurant-menu/config"
	"restaurant-menu/models"
	"restaurant-menu/services"
	"restaurant-menu/storage"
)

func TestMigrationNames(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.Contains(t, names, "migrations/001_menu_blobs.sql")
}

func TestOpenAdapter(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}}
	a, err := openAdapter(cfg)
	require.NoError(t, err)
	require.IsType(t, &storage.Memory{}, a)

	cfg.Store = config.StoreConfig{Driver: config.StoreDriverBolt, BoltPath: filepath.Join(t.TempDir(), "menu.db")}
	a, err = openAdapter(cfg)
	require.NoError(t, err)
	require.IsType(t, &storage.Bolt{}, a)
	require.NoError(t, a.Close())

	cfg.Store = config.StoreConfig{Driver: "sqlite"}
	_, err = openAdapter(cfg)
	require.Error(t, err)
}

func TestDump(t *testing.T) {
	store := services.NewMenuStore(storage.NewMemory(), "menuItems", nil)
	defer store.Close(context.Background())
	store.Initialize(context.Background())
	item, err := store.AddItem(models.CategoryMain, "Steak", "Grilled", "120")
	require.NoError(t, err)

	var buf bytes.Buffer
	dump(&buf, store, "R")
	out := buf.String()
	require.Contains(t, out, "Starters (average no data)")
	require.Contains(t, out, "Mains (average R 120.00)")
	require.Contains(t, out, item.ID)
	require.Contains(t, out, "R 120.00 — Grilled")
}

func TestServe_WithoutTokenWaitsForShutdown(t *testing.T) {
	store := services.NewMenuStore(storage.NewMemory(), "menuItems", nil)
	defer store.Close(context.Background())
	store.Initialize(context.Background())
	cfg := &config.Config{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, store, zap.NewNop()) }()

	select {
	case err := <-done:
		t.Fatalf("serve returned before shutdown: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after shutdown")
	}
}
