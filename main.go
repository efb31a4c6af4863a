package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"restaurant-menu/bot"
	"restaurant-menu/config"
	"restaurant-menu/db"
	"restaurant-menu/logging"
	"restaurant-menu/models"
	"restaurant-menu/services"
	"restaurant-menu/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd == "migrate" {
		runMigrate(cfg)
		return
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	err = run(cfg, cmd, logger)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, cmd string, logger *zap.Logger) error {
	adapter, err := openAdapter(cfg)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer db.Close()
	defer adapter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := services.NewMenuStore(adapter, cfg.Store.Key, logger)
	store.Initialize(ctx)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("final persist failed", zap.Error(err))
		}
	}()

	if cmd == "dump" {
		dump(os.Stdout, store, cfg.Menu.Currency)
		return nil
	}

	if err := serve(ctx, cfg, store, logger); err != nil {
		return err
	}
	logger.Info("shutting down")
	return nil
}

// serve runs the admin bot until ctx is done. Without TOKEN the bot is disabled
// and the store just stays up until shutdown.
func serve(ctx context.Context, cfg *config.Config, store *services.MenuStore, logger *zap.Logger) error {
	if cfg.Telegram.Token == "" {
		logger.Warn("TOKEN not set, bot disabled")
		<-ctx.Done()
		return nil
	}
	b, err := bot.New(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("bot: %w", err)
	}
	b.Start(ctx)
	return nil
}

func openAdapter(cfg *config.Config) (storage.Adapter, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverBolt:
		return storage.OpenBolt(cfg.Store.BoltPath)
	case config.StoreDriverMemory:
		return storage.NewMemory(), nil
	case config.StoreDriverPostgres:
		if err := db.Init(context.Background(), cfg.DB); err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		// Optional auto-migration (useful for fresh DBs).
		// Set AUTO_MIGRATE=1 (or "true") to enable.
		if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
			if err := applyMigrations(context.Background(), false); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return storage.NewPostgres(db.Pool), nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
}

func runMigrate(cfg *config.Config) {
	ctx := context.Background()
	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	err := applyMigrations(ctx, true)
	db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func dump(w io.Writer, store *services.MenuStore, currency string) {
	for _, c := range models.Categories() {
		avg := store.AveragePriceByCategory(c)
		if avg != services.NoData {
			avg = models.FormatPrice(currency, avg)
		}
		fmt.Fprintf(w, "%s (average %s)\n", c.Label(), avg)
		for _, item := range store.ItemsByCategory(c) {
			fmt.Fprintf(w, "  %s  %-24s %s — %s\n", item.ID, item.DishName, models.FormatPrice(currency, item.PriceText()), item.Description)
		}
	}
}
