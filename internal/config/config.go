// Package config loads the service configuration from the environment.
// A .env file next to the binary is honored when present; real
// environment variables win over it.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	Env       string `env:"ENV" env-default:"local"`
	DBURL     string `env:"DB_URL" env-default:""`
	UploadDir string `env:"UPLOAD_DIR" env-default:"uploads"`
	HTTPServer
}

// HTTPServer holds the listener settings.
type HTTPServer struct {
	Port        int           `env:"PORT" env-default:"5000"`
	TimeoutHTTP time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// MustLoad reads the configuration from the environment and exits the
// process on failure. An empty DB_URL selects the default embedded
// SQLite store.
func MustLoad() *Config {
	_ = godotenv.Load() // ok if missing

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
