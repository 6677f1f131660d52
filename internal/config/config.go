package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Portfolio PortfolioConfig
	Server    ServerConfig
	Log       LogConfig
}

type PortfolioConfig struct {
	BaseURL string
}

type ServerConfig struct {
	Port int
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Portfolio: PortfolioConfig{
			BaseURL: "https://someshbagadiya.dev",
		},
		Server: ServerConfig{
			Port: 4000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from defaults and environment variables.
//
// Environment variables:
//
//	PORTFOLIO_BASE_URL  portfolio site root; the API path is appended
//	                    by the upstream client
//	OMNICORE_PORT       local HTTP server port
//	OMNICORE_LOG_LEVEL  log level (debug, info, warn, error)
func Load() (Config, error) {
	cfg := defaults()

	if v := os.Getenv("PORTFOLIO_BASE_URL"); v != "" {
		cfg.Portfolio.BaseURL = v
	}
	if v := os.Getenv("OMNICORE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OMNICORE_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("OMNICORE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}
