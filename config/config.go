package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default listing-source URL templates. "{city}" is replaced with the
// lowercased city token; the trailing wildcard tells the provider to
// crawl every matching listing page.
var defaultSources = SourcesConfig{
	PropertyTemplates: []string{
		"https://www.squareyards.com/sale/property-for-sale-in-{city}/*",
		"https://www.99acres.com/property-in-{city}-ffid/*",
		"https://housing.com/in/buy/{city}/{city}",
	},
	TrendsTemplate: "https://www.99acres.com/property-rates-and-price-trends-in-{city}-prffid/*",
}

type Config struct {
	Firecrawl FirecrawlConfig
	Model     ModelConfig
	Scheduler SchedulerConfig
	Retention RetentionConfig
	Sources   SourcesConfig
	DBPath    string
	DBURL     string
	Listen    string
	LogLevel  string
}

type FirecrawlConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type ModelConfig struct {
	ID     string
	APIKey string
}

type SchedulerConfig struct {
	Cron     string
	Interval time.Duration
}

type RetentionConfig struct {
	MaxAge   time.Duration
	Interval time.Duration
}

type SourcesConfig struct {
	PropertyTemplates []string `yaml:"property_templates"`
	TrendsTemplate    string   `yaml:"trends_template"`
}

// SupportedModels are the chat-model IDs the provider's analysis
// capability accepts.
var SupportedModels = []string{"o3-mini", "gpt-4o"}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Firecrawl: FirecrawlConfig{
			APIKey:  os.Getenv("FIRECRAWL_API_KEY"),
			BaseURL: getEnv("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev/v1"),
			Timeout: time.Duration(getEnvInt("FIRECRAWL_TIMEOUT_SEC", 120)) * time.Second,
		},
		Model: ModelConfig{
			ID:     getEnv("MODEL_ID", "o3-mini"),
			APIKey: os.Getenv("OPENAI_API_KEY"),
		},
		Scheduler: SchedulerConfig{
			Cron: os.Getenv("WATCH_CRON"),
		},
		Retention: RetentionConfig{
			MaxAge:   time.Duration(getEnvInt("RUN_RETENTION_DAYS", 30)) * 24 * time.Hour,
			Interval: 6 * time.Hour,
		},
		Sources:  defaultSources,
		DBPath:   getEnv("DB_PATH", "propscout.db"),
		DBURL:    os.Getenv("DATABASE_URL"),
		Listen:   getEnv("LISTEN_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if interval := os.Getenv("WATCH_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err == nil {
			cfg.Scheduler.Interval = d
		}
	}

	if err := cfg.loadSources(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadSources applies config/sources.yaml on top of the built-in
// templates when the file exists.
func (c *Config) loadSources() error {
	path := getEnv("SOURCES_PATH", "config/sources.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var sources SourcesConfig
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if len(sources.PropertyTemplates) > 0 {
		c.Sources.PropertyTemplates = sources.PropertyTemplates
	}
	if sources.TrendsTemplate != "" {
		c.Sources.TrendsTemplate = sources.TrendsTemplate
	}
	return nil
}

// Validate checks the startup-fatal conditions: both credentials must be
// non-empty and the model ID must be one of the supported options.
func (c *Config) Validate() error {
	if c.Firecrawl.APIKey == "" {
		return errors.New("FIRECRAWL_API_KEY not set")
	}
	if c.Model.APIKey == "" {
		return errors.New("OPENAI_API_KEY not set")
	}
	for _, id := range SupportedModels {
		if c.Model.ID == id {
			return nil
		}
	}
	return fmt.Errorf("unsupported model %q (supported: %s)", c.Model.ID, strings.Join(SupportedModels, ", "))
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
