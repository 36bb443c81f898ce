package jobpress

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override store credentials. Credentials
// never live in the config file.
const (
	EnvSiteURL     = "WP_SITE_URL"
	EnvUsername    = "WP_USERNAME"
	EnvAppPassword = "WP_APP_PASSWORD"
)

// Default pipeline settings applied when the config file leaves them
// unset.
const (
	DefaultConcurrency       = 4
	DefaultMaxPerSource      = 10
	DefaultPublishDelaySecs  = 3
	DefaultRequestsPerSecond = 1.0
)

// Config is the full process configuration: the content store
// endpoint, scrape sources, category identifier mapping, aggregator
// blocklist, and pipeline tuning.
type Config struct {
	Store      StoreConfig    `yaml:"store"`
	Sources    []SourceConfig `yaml:"sources"`
	Categories map[string]int `yaml:"categories"`
	Blocklist  []string       `yaml:"blocklist"`
	Pipeline   PipelineConfig `yaml:"pipeline"`
	LogLevel   string         `yaml:"log_level"`
}

// StoreConfig holds the content store endpoint and credentials.
type StoreConfig struct {
	SiteURL     string `yaml:"site_url"`
	Username    string `yaml:"username"`
	AppPassword string `yaml:"app_password"`
}

// SourceConfig is the yaml form of a SourceProfile.
type SourceConfig struct {
	Name        string   `yaml:"name"`
	Domain      string   `yaml:"domain"`
	ListingURLs []string `yaml:"listing_urls"`
	FeedURLs    []string `yaml:"feed_urls"`
	Keywords    []string `yaml:"keywords"`
}

// Profile converts the config entry into a SourceProfile.
func (s SourceConfig) Profile() SourceProfile {
	return SourceProfile{
		Name:        s.Name,
		Domain:      s.Domain,
		ListingURLs: s.ListingURLs,
		FeedURLs:    s.FeedURLs,
		Keywords:    s.Keywords,
	}
}

// PipelineConfig tunes concurrency and pacing.
type PipelineConfig struct {
	Concurrency       int     `yaml:"concurrency"`
	MaxPerSource      int     `yaml:"max_per_source"`
	PublishDelaySecs  int     `yaml:"publish_delay_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// LoadConfig reads and parses the yaml config file, applies
// environment overrides for credentials, fills defaults, and
// validates. A missing or invalid configuration is fatal to the
// caller: the process must refuse to run before any candidate is
// processed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Errorf(EINVALID, "cannot read config %q: %v", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, Errorf(EINVALID, "cannot parse config %q: %v", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSiteURL); v != "" {
		c.Store.SiteURL = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		c.Store.Username = v
	}
	if v := os.Getenv(EnvAppPassword); v != "" {
		c.Store.AppPassword = v
	}
	c.Store.SiteURL = strings.TrimRight(c.Store.SiteURL, "/")
}

func (c *Config) applyDefaults() {
	if c.Pipeline.Concurrency <= 0 {
		c.Pipeline.Concurrency = DefaultConcurrency
	}
	if c.Pipeline.MaxPerSource <= 0 {
		c.Pipeline.MaxPerSource = DefaultMaxPerSource
	}
	if c.Pipeline.PublishDelaySecs <= 0 {
		c.Pipeline.PublishDelaySecs = DefaultPublishDelaySecs
	}
	if c.Pipeline.RequestsPerSecond <= 0 {
		c.Pipeline.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate returns an error if the configuration is incomplete.
func (c *Config) Validate() error {
	if c.Store.SiteURL == "" {
		return Errorf(EINVALID, "store site URL required (set %s)", EnvSiteURL)
	}
	if c.Store.Username == "" {
		return Errorf(EINVALID, "store username required (set %s)", EnvUsername)
	}
	if c.Store.AppPassword == "" {
		return Errorf(EINVALID, "store app password required (set %s)", EnvAppPassword)
	}
	if len(c.Sources) == 0 {
		return Errorf(EINVALID, "at least one source required")
	}
	for i := range c.Sources {
		profile := c.Sources[i].Profile()
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("source %d: %w", i, err)
		}
	}
	if _, err := c.CategoryMap(); err != nil {
		return err
	}
	return nil
}

// CategoryMap converts the configured name→identifier mapping into a
// validated CategoryMap.
func (c *Config) CategoryMap() (CategoryMap, error) {
	known := make(map[string]Category, len(Categories()))
	for _, cat := range Categories() {
		known[string(cat)] = cat
	}

	m := make(CategoryMap, len(c.Categories))
	for name, id := range c.Categories {
		cat, ok := known[name]
		if !ok {
			return nil, Errorf(EINVALID, "unknown category %q in config", name)
		}
		m[cat] = id
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Profiles returns all configured sources as profiles.
func (c *Config) Profiles() []SourceProfile {
	profiles := make([]SourceProfile, 0, len(c.Sources))
	for _, s := range c.Sources {
		profiles = append(profiles, s.Profile())
	}
	return profiles
}
