package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup from the environment, with an optional
// .env file for local development.
type Config struct {
	Addr             string
	DemoPassword     string
	AutoSaveInterval time.Duration
	SessionTimeout   time.Duration

	AIKey   string
	AIBase  string
	AIModel string

	LogLevel string
}

func Load() Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Addr:             env("ASG_ADDR", ":8080"),
		DemoPassword:     env("ASG_DEMO_PASSWORD", "asg-demo"),
		AutoSaveInterval: envDuration("ASG_AUTOSAVE_INTERVAL", 30*time.Second),
		SessionTimeout:   envDuration("ASG_SESSION_TIMEOUT", 30*time.Minute),
		AIKey:            os.Getenv("AI_API_KEY"),
		AIBase:           os.Getenv("AI_API_BASE"),
		AIModel:          env("AI_MODEL", "gpt-4o-mini"),
		LogLevel:         env("LOG_LEVEL", "info"),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
