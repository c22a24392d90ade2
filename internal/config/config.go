// Package config is the single source of truth for server and arena
// settings. Values come from typed defaults with environment variable
// overrides; nothing else in the codebase reads the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"duck-royale/internal/game"
)

// ServerConfig holds HTTP/WebSocket server settings.
type ServerConfig struct {
	Port      int
	StaticDir string // client bundle directory served at /
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:      3000,
		StaticDir: "./public",
	}
}

// ServerFromEnv returns server configuration with environment
// variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if d := os.Getenv("STATIC_DIR"); d != "" {
		cfg.StaticDir = d
	}
	return cfg
}

// GameFromEnv returns the arena configuration with environment
// variable overrides over the canonical defaults.
func GameFromEnv() game.Config {
	cfg := game.DefaultConfig()

	if r := getEnvFloat("ARENA_RADIUS", 0); r > 0 {
		cfg.ArenaRadius = r
	}
	if d := getEnvFloat("COLLISION_DISTANCE", 0); d > 0 {
		cfg.CollisionDistance = d
	}
	if mp := getEnvInt("MAX_PLAYERS", 0); mp > 0 {
		cfg.MaxPlayers = mp
	}
	if s := getEnvInt("MATCH_DURATION_SEC", 0); s > 0 {
		cfg.MatchDuration = time.Duration(s) * time.Second
	}
	if t := getEnvInt("TICK_RATE", 0); t > 0 {
		cfg.TickRate = t
	}
	return cfg
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Server ServerConfig
	Game   game.Config
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Server: ServerFromEnv(),
		Game:   GameFromEnv(),
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
