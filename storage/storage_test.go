package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// exerciseAdapter runs the behaviour every adapter must share.
func exerciseAdapter(t *testing.T, a Adapter, key string) {
	t.Helper()
	ctx := context.Background()

	_, err := a.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, a.Set(ctx, key, []byte(`[{"id":"1"}]`)))
	got, err := a.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, a.Set(ctx, key, []byte(`[]`)))
	got, err = a.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exerciseAdapter(t, m, "menuItems")
	require.NoError(t, m.Close())
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'x'
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemory()
	require.ErrorIs(t, m.Set(ctx, "k", nil), context.Canceled)
	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestBolt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.db")
	b, err := OpenBolt(path)
	require.NoError(t, err)
	exerciseAdapter(t, b, "menuItems")
	require.NoError(t, b.Close())

	// Values survive reopening the file.
	b, err = OpenBolt(path)
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Get(context.Background(), "menuItems")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))
}

// Integration test for the Postgres adapter. Skip if DB_TEST_URL is unset or -short.
func TestPostgres_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	url := os.Getenv("DB_TEST_URL")
	if url == "" {
		t.Skip("skipping postgres integration test: DB_TEST_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS menu_blobs (
		key TEXT PRIMARY KEY, value BYTEA NOT NULL, updated_at TIMESTAMPTZ NOT NULL DEFAULT now())`)
	require.NoError(t, err)

	const key = "menuItems_test"
	_, err = pool.Exec(ctx, `DELETE FROM menu_blobs WHERE key = $1`, key)
	require.NoError(t, err)
	defer func() {
		_, _ = pool.Exec(ctx, `DELETE FROM menu_blobs WHERE key = $1`, key)
	}()

	exerciseAdapter(t, NewPostgres(pool), key)
}
