package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the ThreatLens server and ingestor.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AI       AIConfig
	Ingest   IngestConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

// AIConfig selects and configures the analysis engine. Provider may be
// empty: the service then runs unconfigured and enrichment degrades to
// sentinel values instead of failing ingestion.
type AIConfig struct {
	Provider         string
	InferenceTimeout time.Duration
	Gemini           GeminiConfig
	OpenAI           OpenAIConfig
}

type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// IngestConfig controls one ingestion cycle. The record defaults applied to
// feed entries are collaborator configuration, not core logic, so they live
// here rather than in the ingestor.
type IngestConfig struct {
	FeedURL         string
	MaxItems        int
	Pause           time.Duration
	DefaultType     string
	DefaultSeverity string
	SourceName      string
}

var validProviders = map[string]bool{
	"gemini": true,
	"openai": true,
}

var validSeverities = map[string]bool{
	"Low":      true,
	"Medium":   true,
	"High":     true,
	"Critical": true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("THREATLENS_PORT", 8080),
			Env:  envString("THREATLENS_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		AI: AIConfig{
			Provider:         os.Getenv("AI_PROVIDER"),
			InferenceTimeout: envDurationSecs("AI_INFERENCE_TIMEOUT_SECS", 60*time.Second),
			Gemini: GeminiConfig{
				BaseURL: envString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
				APIKey:  os.Getenv("GEMINI_API_KEY"),
				Model:   envString("GEMINI_MODEL", "gemini-1.5-flash"),
			},
			OpenAI: OpenAIConfig{
				BaseURL: envString("OPENAI_BASE_URL", ""),
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				Model:   envString("OPENAI_MODEL", "gpt-4o-mini"),
			},
		},
		Ingest: IngestConfig{
			FeedURL:         envString("FEED_URL", "https://feeds.feedburner.com/TheHackersNews"),
			MaxItems:        envInt("FEED_MAX_ITEMS", 10),
			Pause:           envDurationSecs("INGEST_PAUSE_SECS", 2*time.Second),
			DefaultType:     envString("INGEST_DEFAULT_TYPE", "News Article"),
			DefaultSeverity: envString("INGEST_DEFAULT_SEVERITY", "Medium"),
			SourceName:      envString("INGEST_SOURCE_NAME", "The Hacker News"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	// AI_PROVIDER is optional — unset means the engine is unconfigured and
	// enrichment falls back to sentinel values.
	if c.AI.Provider != "" && !validProviders[c.AI.Provider] {
		return fmt.Errorf("AI_PROVIDER must be one of gemini, openai; got %q", c.AI.Provider)
	}

	if c.Ingest.FeedURL == "" {
		return fmt.Errorf("FEED_URL must not be empty")
	}
	if !strings.HasPrefix(c.Ingest.FeedURL, "http://") && !strings.HasPrefix(c.Ingest.FeedURL, "https://") {
		return fmt.Errorf("FEED_URL must start with http:// or https://, got %q", c.Ingest.FeedURL)
	}
	if c.Ingest.MaxItems <= 0 {
		return fmt.Errorf("FEED_MAX_ITEMS must be positive, got %d", c.Ingest.MaxItems)
	}
	if !validSeverities[c.Ingest.DefaultSeverity] {
		return fmt.Errorf("INGEST_DEFAULT_SEVERITY must be one of Low, Medium, High, Critical; got %q", c.Ingest.DefaultSeverity)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
