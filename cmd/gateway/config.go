// In file: cmd/gateway/config.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds all configuration for the gateway, loaded from the
// environment and config.yaml.
type AppConfig struct {
	Port         string `env:"PORT" envDefault:"8000"`
	GinMode      string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"mcp_gateway.db"`
	JWTSecret    string `env:"JWT_SECRET_KEY" envDefault:"change-me-in-production"`
	ConfigFile   string `env:"CONFIG_FILE" envDefault:"config.yaml"`

	// Tool API keys. "demo_key" makes the affected tool serve demo data.
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY" envDefault:"demo_key"`
	NewsAPIKey        string `env:"NEWS_API_KEY" envDefault:"demo_key"`

	// Gemini backend; empty key selects the pattern generator.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	Engine EngineSettings `env:"-"`
}

// EngineSettings come from config.yaml and tune the MCP engine, caching, and
// rate limiting.
type EngineSettings struct {
	MaxConcurrentTools int `yaml:"max_concurrent_tools"`
	ToolTimeoutSeconds int `yaml:"tool_timeout_seconds"`
	CacheTTLSeconds    int `yaml:"cache_ttl_seconds"`

	RateLimits struct {
		AskPerMinute      int `yaml:"ask_per_minute"`
		LoginPerMinute    int `yaml:"login_per_minute"`
		RegisterPerMinute int `yaml:"register_per_minute"`
	} `yaml:"rate_limits"`

	CORSOrigins []string `yaml:"cors_origins"`
}

// ToolTimeout returns the per-call timeout as a duration.
func (s EngineSettings) ToolTimeout() time.Duration {
	return time.Duration(s.ToolTimeoutSeconds) * time.Second
}

// CacheTTL returns the response-cache TTL as a duration.
func (s EngineSettings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// LoadConfig loads configuration from a .env file, environment variables, and
// config.yaml. In release mode (Docker), the .env file is skipped and
// configuration comes from the environment alone.
func LoadConfig() (*AppConfig, error) {
	if os.Getenv("GIN_MODE") != "release" {
		// Best effort: local development may not have a .env file.
		_ = godotenv.Load()
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	raw, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.ConfigFile, err)
	}
	if err := yaml.Unmarshal(raw, &cfg.Engine); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfg.ConfigFile, err)
	}
	applyEngineDefaults(&cfg.Engine)

	return cfg, nil
}

func applyEngineDefaults(s *EngineSettings) {
	if s.MaxConcurrentTools <= 0 {
		s.MaxConcurrentTools = 5
	}
	if s.ToolTimeoutSeconds <= 0 {
		s.ToolTimeoutSeconds = 30
	}
	if s.CacheTTLSeconds <= 0 {
		s.CacheTTLSeconds = 600
	}
	if s.RateLimits.AskPerMinute <= 0 {
		s.RateLimits.AskPerMinute = 30
	}
	if s.RateLimits.LoginPerMinute <= 0 {
		s.RateLimits.LoginPerMinute = 5
	}
	if s.RateLimits.RegisterPerMinute <= 0 {
		s.RateLimits.RegisterPerMinute = 3
	}
	if len(s.CORSOrigins) == 0 {
		s.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
}
