package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries the environment of one device.
type Config struct {
	Env         string // dev, test, prod
	LocalDBPath string // sqlite file of the local store
	RemoteDSN   string // postgres DSN of the shared remote store
	RedisAddr   string // optional; empty disables the status cache
	UserID      string // default account for CLI commands
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads the environment, with .env loaded automatically.
func LoadConfig() *Config {
	return &Config{
		Env:         env("ENV", "dev"),
		LocalDBPath: env("LOCAL_DB_PATH", ".manuscript/local.db"),
		RemoteDSN:   os.Getenv("REMOTE_DB_DSN"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		UserID:      os.Getenv("MANUSCRIPT_USER_ID"),
	}
}

// GetLocalDB opens the per-device sqlite database.
func GetLocalDB(cnf *Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cnf.LocalDBPath), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("opening local db %s: %v", cnf.LocalDBPath, err)
	}
	return db
}

// GetRemoteDB opens the shared postgres database.
func GetRemoteDB(cnf *Config) *gorm.DB {
	if cnf.RemoteDSN == "" {
		logrus.Fatal("REMOTE_DB_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(cnf.RemoteDSN), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("opening remote db: %v", err)
	}
	return db
}
