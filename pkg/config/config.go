package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard" jsonschema:"description=Dashboard data source configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:inteldash.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		Enabled        bool `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable the periodic update pipeline"`
		UpdateInterval int  `yaml:"update_interval" json:"update_interval" jsonschema:"default=360,description=Pipeline run interval in minutes"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Collector  CollectorConfig  `yaml:"collector" json:"collector" jsonschema:"description=News collection configuration"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Full-text extraction configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for record classification"`
	Publish    PublishConfig    `yaml:"publish" json:"publish" jsonschema:"description=Dataset publishing configuration"`
}

// DashboardConfig holds the remote dashboard document settings
type DashboardConfig struct {
	SourceURL string `yaml:"source_url" json:"source_url" jsonschema:"description=Remote URL of the published dashboard dataset"`
	UserAgent string `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for the outbound fetch"`
	MaxAge    int    `yaml:"max_age" json:"max_age" jsonschema:"default=300,description=Cache freshness hint in seconds"`
}

// Feed describes a single RSS/Atom source for the collector
type Feed struct {
	Name string `yaml:"name" json:"name" jsonschema:"description=Human-readable feed name"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// NewsAPIConfig holds settings for the Mediastack-style news API source
type NewsAPIConfig struct {
	URL       string `yaml:"url" json:"url" jsonschema:"default=http://api.mediastack.com/v1/news,description=News API endpoint"`
	AccessKey string `yaml:"access_key" json:"access_key" jsonschema:"description=API access key (can use environment variable)"`
	Countries string `yaml:"countries" json:"countries" jsonschema:"description=Comma-separated ISO 3166 alpha-2 country codes"`
	Keywords  string `yaml:"keywords" json:"keywords" jsonschema:"description=Comma-separated search keywords"`
	Limit     int    `yaml:"limit" json:"limit" jsonschema:"default=25,description=Maximum articles per request"`
	Sort      string `yaml:"sort" json:"sort" jsonschema:"default=published_desc,description=Sort order"`
}

// CollectorConfig holds news collection settings
type CollectorConfig struct {
	NewsAPI NewsAPIConfig `yaml:"news_api" json:"news_api" jsonschema:"description=News API source"`
	Feeds   []Feed        `yaml:"feeds" json:"feeds" jsonschema:"description=Additional RSS/Atom sources"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-source fetch timeout"`
}

// ExtractionConfig holds full-text extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable full-text extraction of article URLs"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=5,description=Maximum concurrent extractions"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Inteldash/1.0,description=User agent for extraction requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// LLMConfig holds LLM configuration for record classification
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.2,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=4000,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt override (optional)"`
}

// GitHubConfig holds settings for publishing the dataset to a git repository
type GitHubConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Publish the dataset via the GitHub contents API"`
	APIURL   string `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.github.com,description=GitHub API base URL"`
	Repo     string `yaml:"repo" json:"repo" jsonschema:"description=owner/name of the target repository"`
	FilePath string `yaml:"file_path" json:"file_path" jsonschema:"default=DashData/data.json,description=Path of the dataset file in the repository"`
	Branch   string `yaml:"branch" json:"branch" jsonschema:"default=main,description=Target branch"`
	Token    string `yaml:"token" json:"token" jsonschema:"description=Personal access token (can use environment variable)"`
}

// PublishConfig holds dataset publishing settings
type PublishConfig struct {
	Path   string       `yaml:"path" json:"path" jsonschema:"default=data/data.json,description=Local path of the published dataset"`
	GitHub GitHubConfig `yaml:"github" json:"github" jsonschema:"description=GitHub publishing settings"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills in zero values with defaults
func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// dashboard source
	if c.Dashboard.SourceURL == "" {
		c.Dashboard.SourceURL = "https://raw.githubusercontent.com/shahnlouis-commits/ASI-Intel-Dash/main/DashData/data.json"
	}
	if c.Dashboard.UserAgent == "" {
		c.Dashboard.UserAgent = "Inteldash/1.0 (+https://github.com/umputun/inteldash)"
	}
	if c.Dashboard.MaxAge == 0 {
		c.Dashboard.MaxAge = 300
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:inteldash.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if c.Schedule.UpdateInterval == 0 {
		c.Schedule.UpdateInterval = 360
	}

	// collector
	if c.Collector.NewsAPI.URL == "" {
		c.Collector.NewsAPI.URL = "http://api.mediastack.com/v1/news"
	}
	if c.Collector.NewsAPI.Limit == 0 {
		c.Collector.NewsAPI.Limit = 25
	}
	if c.Collector.NewsAPI.Sort == "" {
		c.Collector.NewsAPI.Sort = "published_desc"
	}
	if c.Collector.Timeout == 0 {
		c.Collector.Timeout = 30 * time.Second
	}

	// extraction
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.MaxConcurrent == 0 {
		c.Extraction.MaxConcurrent = 5
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = "Inteldash/1.0"
	}
	if c.Extraction.MinTextLength == 0 {
		c.Extraction.MinTextLength = 100
	}

	// llm
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.2
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}

	// publish
	if c.Publish.Path == "" {
		c.Publish.Path = "data/data.json"
	}
	if c.Publish.GitHub.APIURL == "" {
		c.Publish.GitHub.APIURL = "https://api.github.com"
	}
	if c.Publish.GitHub.FilePath == "" {
		c.Publish.GitHub.FilePath = "DashData/data.json"
	}
	if c.Publish.GitHub.Branch == "" {
		c.Publish.GitHub.Branch = "main"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate dashboard config
	if cfg.Dashboard.MaxAge < 0 {
		return fmt.Errorf("dashboard.max_age must be non-negative")
	}

	// the pipeline needs a classifier and at least one source
	if cfg.Schedule.Enabled {
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when schedule is enabled")
		}
		if cfg.Collector.NewsAPI.AccessKey == "" && len(cfg.Collector.Feeds) == 0 {
			return fmt.Errorf("collector needs news_api.access_key or at least one feed when schedule is enabled")
		}
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	// validate extraction config
	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	// validate github publishing config
	if cfg.Publish.GitHub.Enabled {
		if cfg.Publish.GitHub.Repo == "" {
			return fmt.Errorf("publish.github.repo is required when github publishing is enabled")
		}
		if cfg.Publish.GitHub.Token == "" {
			return fmt.Errorf("publish.github.token is required when github publishing is enabled")
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetDashboardConfig returns dashboard data source configuration
func (c *Config) GetDashboardConfig() DashboardConfig {
	return c.Dashboard
}

// GetCollectorConfig returns news collection configuration
func (c *Config) GetCollectorConfig() CollectorConfig {
	return c.Collector
}

// GetExtractionConfig returns full-text extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetPublishConfig returns dataset publishing configuration
func (c *Config) GetPublishConfig() PublishConfig {
	return c.Publish
}
