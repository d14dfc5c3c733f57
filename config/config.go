package config

import (
	"errors"
	"os"
)

// Config holds every environment-supplied setting the server needs.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string
}

// Load reads configuration from the environment. A missing MONGO_URI or
// JWT_SECRET is a startup error, never a per-request one.
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   os.Getenv("MONGO_DB"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "todos"
	}
	if cfg.MongoURI == "" {
		return Config{}, errors.New("MONGO_URI must be set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}
	return cfg, nil
}
