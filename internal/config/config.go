package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"jobsift/internal/scrape"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		BaseURL   string `yaml:"base_url"`
		Term      string `yaml:"term"`
		Stride    int    `yaml:"stride"`
		MaxOffset int    `yaml:"max_offset"`
	} `yaml:"search"`

	Fetch struct {
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		ReqPerSec      float64 `yaml:"req_per_sec"`
		Concurrency    int     `yaml:"concurrency"`
		MaxRetries     int     `yaml:"max_retries"`
		RetryBaseMS    int     `yaml:"retry_base_ms"`
	} `yaml:"fetch"`

	Selectors   scrape.Selectors `yaml:"selectors"`
	Description string           `yaml:"description_selector"`

	Report struct {
		Keywords []string `yaml:"keywords"`
	} `yaml:"report"`
}

// Default returns the reference configuration: Indeed-style markup, ten
// results per page, ten pages, one request per second.
func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Search.BaseURL = "https://www.indeed.com"
	cfg.Search.Term = "data scientist"
	cfg.Search.Stride = 10
	cfg.Search.MaxOffset = 100
	cfg.Fetch.TimeoutSeconds = 20
	cfg.Fetch.ReqPerSec = 1
	cfg.Fetch.Concurrency = 1
	cfg.Fetch.MaxRetries = 2
	cfg.Fetch.RetryBaseMS = 1000
	cfg.Selectors = scrape.DefaultSelectors()
	cfg.Description = "div#jobDescriptionText"
	cfg.Report.Keywords = []string{
		"python", "sql", "machine learning", "spark", "aws",
		"tensorflow", "statistics", "tableau", "go", "docker",
	}
	return cfg
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults describe a complete run.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Search.BaseURL) == "" {
		return errors.New("search.base_url must not be empty")
	}
	if strings.TrimSpace(c.Search.Term) == "" {
		return errors.New("search.term must not be empty")
	}
	if c.Search.Stride <= 0 {
		return errors.New("search.stride must be positive")
	}
	if c.Search.MaxOffset < 0 {
		return errors.New("search.max_offset must not be negative")
	}
	return nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func (c Config) RetryBase() time.Duration {
	return time.Duration(c.Fetch.RetryBaseMS) * time.Millisecond
}
