package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceType identifies where the site documents are read from
type SourceType string

const (
	SourceTypeDir    SourceType = "dir"
	SourceTypeHTTP   SourceType = "http"
	SourceTypeBolt   SourceType = "bolt"
	SourceTypeSQLite SourceType = "sqlite"
)

// EnvPrefix prefixes every environment override, e.g. STOREFRONT_SERVER_ADDR.
const EnvPrefix = "STOREFRONT"

// Config holds all application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Server  ServerConfig  `mapstructure:"server"`
	Site    SiteConfig    `mapstructure:"site"`
	Logging LoggingConfig `mapstructure:"logging"`
	Search  SearchConfig  `mapstructure:"search"`
}

// SourceConfig holds the document source configuration
type SourceConfig struct {
	Type    SourceType    `mapstructure:"type"`    // "dir", "http", "bolt" or "sqlite"
	Dir     string        `mapstructure:"dir"`     // Directory holding the JSON documents
	URL     string        `mapstructure:"url"`     // Base URL the documents are served under
	Timeout time.Duration `mapstructure:"timeout"` // Per-document fetch timeout, 0 for none
	DataDir string        `mapstructure:"data_dir"`
	DBPath  string        `mapstructure:"db_path"`
	Table   string        `mapstructure:"table"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// SiteConfig holds site presentation configuration
type SiteConfig struct {
	Name        string `mapstructure:"name"`
	PageSize    int    `mapstructure:"page_size"`
	OutputDir   string `mapstructure:"output_dir"`  // Target of the render command
	PostsDir    string `mapstructure:"posts_dir"`   // Markdown posts read by import-blogs
	Frontmatter string `mapstructure:"frontmatter"` // "yaml" or "toml" for new-post
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// SearchConfig holds full-text search configuration
type SearchConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:    SourceTypeDir,
			Dir:     "data",
			Timeout: 10 * time.Second,
			DataDir: ".storefront",
			DBPath:  "storefront.sqlite",
			Table:   "documents",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 30 * time.Second,
		},
		Site: SiteConfig{
			Name:        "Patel Universal Traders",
			PageSize:    9,
			OutputDir:   "public",
			PostsDir:    "posts",
			Frontmatter: "yaml",
		},
		Logging: LoggingConfig{
			File:   "",
			Level:  "INFO",
			Format: "text",
		},
		Search: SearchConfig{
			Enabled: true,
			Limit:   10,
		},
	}
}

// Load reads configuration from configFile, if given, or from storefront.yaml in the working
// directory, then applies STOREFRONT_* environment overrides on top of the defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceTypeDir:
		if c.Source.Dir == "" {
			return errors.New("source.dir is required for a dir source")
		}
	case SourceTypeHTTP:
		if c.Source.URL == "" {
			return errors.New("source.url is required for an http source")
		}
	case SourceTypeBolt:
		if c.Source.DataDir == "" {
			return errors.New("source.data_dir is required for a bolt source")
		}
	case SourceTypeSQLite:
		if c.Source.DBPath == "" {
			return errors.New("source.db_path is required for a sqlite source")
		}
	default:
		return fmt.Errorf("unknown source type %q", c.Source.Type)
	}

	if c.Site.PageSize < 0 {
		return fmt.Errorf("site.page_size must not be negative, got %d", c.Site.PageSize)
	}

	switch strings.ToLower(c.Site.Frontmatter) {
	case "yaml", "toml":
	default:
		return fmt.Errorf("site.frontmatter must be yaml or toml, got %q", c.Site.Frontmatter)
	}

	return nil
}

// setDefaults registers every key so that AutomaticEnv can override it during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source.type", string(cfg.Source.Type))
	v.SetDefault("source.dir", cfg.Source.Dir)
	v.SetDefault("source.url", cfg.Source.URL)
	v.SetDefault("source.timeout", cfg.Source.Timeout)
	v.SetDefault("source.data_dir", cfg.Source.DataDir)
	v.SetDefault("source.db_path", cfg.Source.DBPath)
	v.SetDefault("source.table", cfg.Source.Table)

	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.request_timeout", cfg.Server.RequestTimeout)

	v.SetDefault("site.name", cfg.Site.Name)
	v.SetDefault("site.page_size", cfg.Site.PageSize)
	v.SetDefault("site.output_dir", cfg.Site.OutputDir)
	v.SetDefault("site.posts_dir", cfg.Site.PostsDir)
	v.SetDefault("site.frontmatter", cfg.Site.Frontmatter)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("search.enabled", cfg.Search.Enabled)
	v.SetDefault("search.limit", cfg.Search.Limit)
}
