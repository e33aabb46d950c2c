package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	RedisAddr   string
	AppEnv      string
}

// Load reads .env (if present) and builds the runtime configuration.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			getEnv("DB_USER", "skillswap"),
			getEnv("DB_PASSWORD", "skillswap"),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_NAME", "skillswap"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		DatabaseURL: dbURL,
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisAddr:   getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		AppEnv:      getEnv("APP_ENV", "production"),
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "production" {
			log.Fatal("JWT_SECRET must be set")
		}
		cfg.JWTSecret = "dev-secret"
		os.Setenv("JWT_SECRET", cfg.JWTSecret)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
