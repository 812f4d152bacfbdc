// Package config provides configuration loading and structs for the kotae server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// EmbeddingConfig selects and configures the embedding provider.
// Provider is "mock" (deterministic, offline) or "openai".
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"`
	Dimensions  int    `yaml:"dimensions"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	CacheSize   int    `yaml:"cache_size"`
}

// SynthesisConfig selects and configures the answer synthesizer.
// Provider is "mock" or "openai".
type SynthesisConfig struct {
	Provider    string `yaml:"provider"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// RetrievalConfig holds chunk ranking settings.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// ChunkingConfig holds text chunking settings.
type ChunkingConfig struct {
	MinChars     int `yaml:"min_chars"`
	EmbedWorkers int `yaml:"embed_workers"`
}

// WatchConfig holds optional directory auto-ingestion settings. Watching is
// disabled when Directories is empty.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
}

// Load reads and parses the config file at path and applies defaults and
// environment overrides. A missing file is not an error: defaults are used so
// the server runs without any configuration.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// applyEnvOverrides lets the process environment override select values, the
// way the serving environment usually injects them: PORT, TOP_K, and
// MIN_CHUNK_CHARS.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			cfg.Retrieval.TopK = k
		}
	}
	if v := os.Getenv("MIN_CHUNK_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Chunking.MinChars = n
		}
	}
}
