package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	ActivityCooldown time.Duration
	DecayInterval    time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),
	}

	// Parsing durations
	var err error
	cfg.ActivityCooldown, err = parseDuration(getEnv("ACTIVITY_COOLDOWN", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTIVITY_COOLDOWN: %w", err)
	}
	cfg.DecayInterval, err = parseDuration(getEnv("DECAY_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DECAY_INTERVAL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
