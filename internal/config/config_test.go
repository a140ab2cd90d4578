package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddeep01/storefront/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, config.SourceTypeDir, cfg.Source.Type)
	assert.Equal(t, 9, cfg.Site.PageSize)
	assert.Equal(t, "Patel Universal Traders", cfg.Site.Name)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	content := `
source:
  type: http
  url: https://example.com/data/
  timeout: 5s
site:
  page_size: 12
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.SourceTypeHTTP, cfg.Source.Type)
	assert.Equal(t, "https://example.com/data/", cfg.Source.URL)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 12, cfg.Site.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr, "unset keys keep their defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0644))

	t.Setenv("STOREFRONT_SERVER_ADDR", ":7000")
	t.Setenv("STOREFRONT_SITE_NAME", "Test Traders")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "Test Traders", cfg.Site.Name)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "http without url", mutate: func(c *config.Config) { c.Source.Type = config.SourceTypeHTTP }, wantErr: true},
		{name: "http with url", mutate: func(c *config.Config) {
			c.Source.Type = config.SourceTypeHTTP
			c.Source.URL = "https://example.com/"
		}},
		{name: "unknown source", mutate: func(c *config.Config) { c.Source.Type = "ftp" }, wantErr: true},
		{name: "negative page size", mutate: func(c *config.Config) { c.Site.PageSize = -1 }, wantErr: true},
		{name: "toml frontmatter", mutate: func(c *config.Config) { c.Site.Frontmatter = "toml" }},
		{name: "json frontmatter", mutate: func(c *config.Config) { c.Site.Frontmatter = "json" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
