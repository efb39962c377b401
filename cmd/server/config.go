package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server settings. Values come from an optional YAML file
// with environment variables as fallbacks for anything unset.
type Config struct {
	Port        string   `yaml:"port"`
	LogLevel    string   `yaml:"log_level"`
	NATSURL     string   `yaml:"nats_url"`
	CORSOrigins []string `yaml:"cors_origins"`
}

func loadConfig(path string) (*Config, error) {
	var config Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if config.Port == "" {
		config.Port = getEnv("PORT", "8080")
	}
	if config.LogLevel == "" {
		config.LogLevel = getEnv("LOG_LEVEL", "info")
	}
	if config.NATSURL == "" {
		config.NATSURL = os.Getenv("NATS_URL")
	}
	if len(config.CORSOrigins) == 0 {
		config.CORSOrigins = []string{"*"}
	}
	return &config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
