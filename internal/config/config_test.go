package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://www.indeed.com", cfg.Search.BaseURL)
	assert.Equal(t, 10, cfg.Search.Stride)
	assert.Equal(t, 100, cfg.Search.MaxOffset)
	assert.Equal(t, 20*time.Second, cfg.Timeout())
	assert.NotEmpty(t, cfg.Report.Keywords)
	assert.Equal(t, "div.result", cfg.Selectors.Result)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
search:
  base_url: "https://jobs.example.test"
  term: "site reliability engineer"
  stride: 25
  max_offset: 50
fetch:
  concurrency: 4
  req_per_sec: 0.5
report:
  keywords: ["kubernetes", "terraform"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://jobs.example.test", cfg.Search.BaseURL)
	assert.Equal(t, "site reliability engineer", cfg.Search.Term)
	assert.Equal(t, 25, cfg.Search.Stride)
	assert.Equal(t, 4, cfg.Fetch.Concurrency)
	assert.Equal(t, []string{"kubernetes", "terraform"}, cfg.Report.Keywords)

	// untouched sections keep their defaults
	assert.Equal(t, 2, cfg.Fetch.MaxRetries)
	assert.Equal(t, "div.result", cfg.Selectors.Result)
}

func TestLoadRejectsEmptyTerm(t *testing.T) {
	path := writeConfig(t, `
search:
  term: "   "
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "search.term")
}

func TestLoadRejectsBadStride(t *testing.T) {
	path := writeConfig(t, `
search:
  stride: -1
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "search.stride")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "search: [not: a map")
	_, err := Load(path)
	assert.Error(t, err)
}
