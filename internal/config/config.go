package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Port          int    `toml:"port"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	DatabaseURL   string `toml:"database_url"`
	MapPath       string `toml:"map_path"`
	TickRate      int    `toml:"tick_rate"` // loop iterations per second
	Seed          uint64 `toml:"seed"`      // 0 picks a seed per room
	MaxSpectators int    `toml:"max_spectators"`
}

func defaults() *Config {
	return &Config{
		Port:          8080,
		LogLevel:      "info",
		LogFormat:     "text",
		DatabaseURL:   "",
		TickRate:      60,
		MaxSpectators: 8,
	}
}

// Load returns the configuration: defaults, then the TOML file named by
// CONFIG_FILE if set, then environment variables.
func Load() (*Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile overlays the values present in a TOML file onto cfg.
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) applyEnv() {
	cfg.Port = getEnvInt("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.MapPath = getEnv("MAP_PATH", cfg.MapPath)
	cfg.TickRate = getEnvInt("TICK_RATE", cfg.TickRate)
	cfg.Seed = getEnvUint("SEED", cfg.Seed)
	cfg.MaxSpectators = getEnvInt("MAX_SPECTATORS", cfg.MaxSpectators)
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return fallback
}
