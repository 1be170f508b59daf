package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"sereno.app/mindgarden/internal/bootstrap"
	"sereno.app/mindgarden/internal/config"
	"sereno.app/mindgarden/internal/server"
	"sereno.app/mindgarden/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if err := bootstrap.SeedResources(db); err != nil {
		log.Fatalf("failed to seed resources: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	// Redis is optional. Without it cooldowns are skipped and
	// notifications fall back to polling.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, running without redis")
	}

	srv := server.NewServer(cfg, db, redisClient)

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
