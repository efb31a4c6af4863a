package db

import (
	"context"
	"fmt"
	"net/url"

	"restaurant-menu/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is set by Init and shared by the Postgres adapter and migrations.
var Pool *pgxpool.Pool

// ConnString builds the postgres URL for cfg, escaping the credentials.
func ConnString(cfg config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Database,
	}
	return u.String()
}

func Init(ctx context.Context, cfg config.DBConfig) error {
	pool, err := pgxpool.New(ctx, ConnString(cfg))
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	Pool = pool
	return nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}
