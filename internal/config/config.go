package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	JWT    JWTConfig    `yaml:"jwt"`
	Redis  RedisConfig  `yaml:"redis"`
	Games  GamesConfig  `yaml:"games"`
	Sweep  SweepConfig  `yaml:"sweep"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Secret string `yaml:"secret"` // Shared HMAC secret with the platform login service
	Issuer string `yaml:"issuer"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// GamesConfig holds game definition settings
type GamesConfig struct {
	Dir string `yaml:"dir"` // Directory of per-game YAML definitions
}

// SweepConfig holds the optional housekeeping sweep settings. The sweep
// pre-warms lazily-reconciled state for dormant players; correctness never
// depends on it, so zero disables it.
type SweepConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "idlecore:"
	}
	if cfg.Games.Dir == "" {
		cfg.Games.Dir = "./configs/games"
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "platform-login"
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret must be configured")
	}

	return &cfg, nil
}
