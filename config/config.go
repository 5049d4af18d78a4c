package config

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	DBPath     string
	UploadsDir string
	Env        string

	TokenSecret []byte
	TokenTTL    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		DBPath:        getEnv("DB_PATH", "kioskmart.db"),
		UploadsDir:    getEnv("UPLOADS_DIR", "./uploads"),
		Env:           getEnv("APP_ENV", "development"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:      getEnv("SMTP_FROM", "no-reply@localhost"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@localhost"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		slog.Warn("TOKEN_SECRET not set. Generating a random key for development. " +
			"Tokens will be invalid on restart. PLEASE SET TOKEN_SECRET IN PRODUCTION!")
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		cfg.TokenSecret = []byte(hex.EncodeToString(buf))
	} else {
		cfg.TokenSecret = []byte(secret)
	}

	ttlHours := getEnvInt("TOKEN_TTL_HOURS", 24)
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	return cfg
}

func (c *Config) Development() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}
