// Package config loads and validates pipeline configuration.
//
// Configuration comes from three layers, lowest priority first: built-in
// defaults, an optional YAML file, and environment variables (with .env
// support for local development). Credentials are only required for commands
// that write to the calendar.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all pipeline settings.
type Config struct {
	// Calendar collaborator
	ServiceAccountJSON string `yaml:"service_account_json"`
	CalendarID         string `yaml:"calendar_id"`

	// Source site
	BaseURL      string `yaml:"base_url"`
	CollectionID string `yaml:"collection_id"`
	Crumb        string `yaml:"crumb"`
	MonthsAhead  int    `yaml:"months_ahead"`

	// Pipeline behavior
	Timezone     string        `yaml:"timezone"`
	Timeout      time.Duration `yaml:"timeout"`
	RequestDelay time.Duration `yaml:"request_delay"`
	InsertDelay  time.Duration `yaml:"insert_delay"`
	CacheSize    int           `yaml:"cache_size"`

	// Operational
	MetricsAddr string `yaml:"metrics_addr"`
	Verbose     bool   `yaml:"verbose"`
}

// DefaultConfig returns the defaults for the NYC for Free source site.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "https://www.nycforfree.co",
		CollectionID: "63de598a71ebc00f98284aaf",
		MonthsAhead:  4,
		Timezone:     "America/New_York",
		Timeout:      20 * time.Second,
		RequestDelay: 250 * time.Millisecond,
		InsertDelay:  10 * time.Millisecond,
		CacheSize:    512,
	}
}

// Load builds a Config from defaults, an optional YAML file, and environment
// variables, in that order of increasing priority. A .env file is honored when
// present. filePath may be empty.
func Load(filePath string) (*Config, error) {
	// Missing .env files are expected outside local development.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := envString("GOOGLE_SERVICE_ACCOUNT_JSON"); ok {
		c.ServiceAccountJSON = v
	}
	if v, ok := envString("GOOGLE_CALENDAR_ID"); ok {
		c.CalendarID = v
	}
	if v, ok := envString("NYC_BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := envString("NYC_COLLECTION_ID"); ok {
		c.CollectionID = v
	}
	if v, ok := envString("NYC_CRUMB"); ok {
		c.Crumb = v
	}
	if v, ok := envString("NYC_TIMEZONE"); ok {
		c.Timezone = v
	}
	if v, ok := envString("NYC_METRICS_ADDR"); ok {
		c.MetricsAddr = v
	}

	var err error
	if c.MonthsAhead, err = envIntDefault("NYC_MONTHS_AHEAD", c.MonthsAhead); err != nil {
		return err
	}
	if c.CacheSize, err = envIntDefault("NYC_CACHE_SIZE", c.CacheSize); err != nil {
		return err
	}
	if c.Timeout, err = envDurationDefault("NYC_HTTP_TIMEOUT", c.Timeout); err != nil {
		return err
	}
	if c.RequestDelay, err = envDurationDefault("NYC_REQUEST_DELAY", c.RequestDelay); err != nil {
		return err
	}
	if c.InsertDelay, err = envDurationDefault("NYC_INSERT_DELAY", c.InsertDelay); err != nil {
		return err
	}
	return nil
}

// Validate ensures the settings every command needs are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base URL must include a scheme")
	}
	if c.CollectionID == "" {
		return fmt.Errorf("collection ID cannot be empty")
	}
	if c.MonthsAhead < 0 {
		return fmt.Errorf("months ahead cannot be negative")
	}
	if c.Timezone == "" {
		return fmt.Errorf("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request delay cannot be negative")
	}
	if c.InsertDelay < 0 {
		return fmt.Errorf("insert delay cannot be negative")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	return nil
}

// ValidateCalendar additionally ensures calendar credentials are present.
// Only commands that touch the calendar require these.
func (c *Config) ValidateCalendar() error {
	if c.ServiceAccountJSON == "" {
		return fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is required")
	}
	if c.CalendarID == "" {
		return fmt.Errorf("GOOGLE_CALENDAR_ID is required")
	}
	return nil
}

func envString(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func envIntDefault(key string, fallback int) (int, error) {
	raw, ok := envString(key)
	if !ok {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func envDurationDefault(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := envString(key)
	if !ok {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
