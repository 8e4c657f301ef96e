package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every config key looked up in the environment
const EnvPrefix = "SNAPSEARCH"

// Config represents the application configuration
type Config struct {
	APIURL         string          `mapstructure:"api_url"`
	SeedQuery      string          `mapstructure:"seed_query"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout"`
	StateFile      string          `mapstructure:"state_file"`
	LogFile        string          `mapstructure:"log_file"`
	Preview        PreviewSettings `mapstructure:"preview"`
	Grid           GridSettings    `mapstructure:"grid"`

	// AccessKey may come from config, but UNSPLASH_ACCESS_KEY wins
	AccessKey string `mapstructure:"access_key" env:"UNSPLASH_ACCESS_KEY"`
}

// PreviewSettings controls the image preview in the detail view
type PreviewSettings struct {
	Enabled   bool `mapstructure:"enabled"`
	CacheSize int  `mapstructure:"cache_size"`
}

// GridSettings controls the result grid layout
type GridSettings struct {
	Columns int `mapstructure:"columns"`
}

// ConfigService loads configuration from file, environment and flags
type ConfigService interface {
	Load() (*Config, error)
	ConfigFileUsed() string
}

type configService struct {
	v            *viper.Viper
	explicitPath string
}

// NewConfigService creates a config service backed by v. Flags bound to v
// take precedence over environment and file values. When explicitPath is
// empty the config file is searched for in the working directory and the
// user config directory, and a missing file is not an error.
func NewConfigService(v *viper.Viper, explicitPath string) ConfigService {
	if v == nil {
		v = viper.New()
	}
	return &configService{v: v, explicitPath: explicitPath}
}

// Load resolves the configuration
func (cs *configService) Load() (*Config, error) {
	v := cs.v
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cs.explicitPath != "" {
		v.SetConfigFile(cs.explicitPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := AppDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cs.explicitPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the config file read, if any
func (cs *configService) ConfigFileUsed() string {
	return cs.v.ConfigFileUsed()
}

// ParseEnv loads env-tagged fields from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects values the application cannot run with
func (c *Config) Validate() error {
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.Grid.Columns < 1 {
		return fmt.Errorf("grid.columns must be at least 1, got %d", c.Grid.Columns)
	}
	if c.Preview.Enabled && c.Preview.CacheSize < 1 {
		return fmt.Errorf("preview.cache_size must be at least 1, got %d", c.Preview.CacheSize)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIURL:         "https://api.unsplash.com/search/photos",
		SeedQuery:      "galaxy",
		RequestTimeout: 30 * time.Second,
		StateFile:      defaultStatePath(),
		LogFile:        "snapsearch.log",
		Preview: PreviewSettings{
			Enabled:   true,
			CacheSize: 32,
		},
		Grid: GridSettings{
			Columns: 4,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("seed_query", d.SeedQuery)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("state_file", d.StateFile)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("preview.enabled", d.Preview.Enabled)
	v.SetDefault("preview.cache_size", d.Preview.CacheSize)
	v.SetDefault("grid.columns", d.Grid.Columns)
	v.SetDefault("access_key", "")
}

// AppDir returns the per-user snapsearch directory
func AppDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("locating config directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "snapsearch"), nil
}

func defaultStatePath() string {
	dir, err := AppDir()
	if err != nil {
		return "state.toml"
	}
	return filepath.Join(dir, "state.toml")
}
