// Package config loads server configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the pathwise server configuration.
type Config struct {
	Port     string
	LogLevel string

	// Content locations.
	GraphPath       string
	SceneSkillsPath string
	CareersPath     string
	EntryNode       string
	HubNode         string

	// Persistence backend: "memory", "file" or "redis".
	StoreBackend string
	StateDir     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	// Evidence retention overrides (zero means default).
	EvidenceCap   int
	RetentionDays int
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		GraphPath:       getEnv("GRAPH_PATH", "content/story.yaml"),
		SceneSkillsPath: getEnv("SCENE_SKILLS_PATH", "content/sceneskills.yaml"),
		CareersPath:     getEnv("CAREERS_PATH", ""),
		EntryNode:       getEnv("ENTRY_NODE", "start"),
		HubNode:         getEnv("HUB_NODE", "hub"),
		StoreBackend:    getEnv("STORE_BACKEND", "memory"),
		StateDir:        getEnv("STATE_DIR", ".pathwise/state"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),
		RedisTTL:        getDuration("REDIS_TTL", 0),
		EvidenceCap:     getInt("EVIDENCE_CAP", 0),
		RetentionDays:   getInt("RETENTION_DAYS", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
