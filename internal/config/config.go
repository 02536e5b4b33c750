package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the client configuration.
type Config struct {
	APIBaseURL string
	StatePath  string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file in the working directory.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[Config] Error loading .env: %v. Relying on system environment variables.", err)
		}
	}

	cfg := Config{
		APIBaseURL: getEnv("ECOWAVE_API_URL", "http://localhost:5001/api"),
		StatePath:  getEnv("ECOWAVE_STATE_PATH", "ecowave.db"),
	}
	log.Printf("[Config] API=%s STATE=%s", cfg.APIBaseURL, cfg.StatePath)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
