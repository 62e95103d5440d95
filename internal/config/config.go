package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Persist PersistConfig
	Redis   RedisConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PersistConfig struct {
	// Backend selects the durable store: "file" or "redis".
	Backend   string
	StateDir  string
	Namespace string
}

type RedisConfig struct {
	URL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8000"),
			Timeout: getEnvAsDuration("API_TIMEOUT", "10s"),
		},
		Persist: PersistConfig{
			Backend:   getEnv("PERSIST_BACKEND", "file"),
			StateDir:  getEnv("STATE_DIR", "./state"),
			Namespace: getEnv("STATE_NAMESPACE", "root"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
