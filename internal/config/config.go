package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	// ALLOWED_ORIGINS holds the websocket origin patterns, comma separated,
	// e.g. "localhost:5173,app.example.com".
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
