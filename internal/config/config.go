package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DataDir     string
	RedisURL    string
	Environment string
}

// LoadConfig reads configuration from the environment, with an optional .env
// file on top. RedisURL empty means the exam cache is disabled.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DataDir:     getEnv("DATA_DIR", "data"),
		RedisURL:    getEnv("REDIS_URL", ""),
		Environment: getEnv("ENVIRONMENT", "development"),
	}, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
