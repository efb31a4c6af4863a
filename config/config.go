package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreDriverBolt     = "bolt"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	DB       DBConfig
	Store    StoreConfig
	Telegram TelegramConfig
	Menu     MenuConfig
	Log      LogConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type StoreConfig struct {
	Driver   string // "bolt", "postgres" or "memory"
	BoltPath string
	Key      string // single key the whole menu is saved under
}

type TelegramConfig struct {
	Token   string
	Login   string // admin password for the bot
	AdminID int64  // optional: only this Telegram user may log in
}

type MenuConfig struct {
	Currency string
}

type LogConfig struct {
	Mode     string // "development" or "production"
	Filename string // rotate into this file when set
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	adminID, _ := strconv.ParseInt(getEnv("ADMIN_ID", "0"), 10, 64)

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "menu"),
		},
		Store: StoreConfig{
			Driver:   getEnv("STORE_DRIVER", StoreDriverBolt),
			BoltPath: getEnv("BOLT_PATH", "menu.db"),
			Key:      getEnv("STORE_KEY", "menuItems"),
		},
		Telegram: TelegramConfig{
			Token:   getEnv("TOKEN", ""),
			Login:   getEnv("LOGIN", ""),
			AdminID: adminID,
		},
		Menu: MenuConfig{
			Currency: getEnv("CURRENCY", "R"),
		},
		Log: LogConfig{
			Mode:     getEnv("LOG_MODE", "development"),
			Filename: getEnv("LOG_FILE", ""),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
