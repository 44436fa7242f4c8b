package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName        = "marquee"
	envPrefix      = "MARQUEE"
	configFileName = "config"
	configFileType = "yaml"

	DefaultOMDbURL = "https://www.omdbapi.com"
)

// Config holds all application configuration
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Storage StorageConfig `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
	Browser BrowserConfig `mapstructure:"browser"`
}

// OMDbConfig holds catalog client configuration
type OMDbConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	EnrichGenres bool          `mapstructure:"enrich_genres"` // One detail lookup per result to fill Genre
}

// StorageConfig holds the watch-list database location
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig tunes the state store
type SessionConfig struct {
	EffectBuffer    int           `mapstructure:"effect_buffer"`
	SearchTimeout   time.Duration `mapstructure:"search_timeout"`
	MutationTimeout time.Duration `mapstructure:"mutation_timeout"`
}

// BrowserConfig holds the command used to open catalog pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			BaseURL: DefaultOMDbURL,
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "watchlist.db"),
		},
		Session: SessionConfig{
			EffectBuffer:    32,
			SearchTimeout:   15 * time.Second,
			MutationTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// newViper builds a viper instance seeded with defaults and env overrides
func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType(configFileType)

	v.SetDefault("omdb.api_key", defaults.OMDb.APIKey)
	v.SetDefault("omdb.base_url", defaults.OMDb.BaseURL)
	v.SetDefault("omdb.timeout", defaults.OMDb.Timeout)
	v.SetDefault("omdb.enrich_genres", defaults.OMDb.EnrichGenres)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("session.effect_buffer", defaults.Session.EffectBuffer)
	v.SetDefault("session.search_timeout", defaults.Session.SearchTimeout)
	v.SetDefault("session.mutation_timeout", defaults.Session.MutationTimeout)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("browser.command", defaults.Browser.Command)
	v.SetDefault("browser.args", defaults.Browser.Args)

	// MARQUEE_OMDB_API_KEY -> omdb.api_key
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment.
// An empty configFile searches the default config directory and ".".
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		// A missing file is OK: defaults apply and SaveConfig can create it
		if !notFound && !(configFile != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Logging.File = ExpandPath(cfg.Logging.File)
	return cfg, nil
}

// SaveConfig writes cfg to configFile, or to config.yaml in the default
// config directory when configFile is empty.
func SaveConfig(cfg *Config, configFile string) (string, error) {
	if configFile == "" {
		configFile = filepath.Join(DefaultConfigPath(), configFileName+"."+configFileType)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configFileType)

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("omdb.api_key", cfg.OMDb.APIKey)
	v.Set("omdb.base_url", cfg.OMDb.BaseURL)
	v.Set("omdb.timeout", cfg.OMDb.Timeout.String())
	v.Set("omdb.enrich_genres", cfg.OMDb.EnrichGenres)

	v.Set("storage.path", cfg.Storage.Path)

	v.Set("session.effect_buffer", cfg.Session.EffectBuffer)
	v.Set("session.search_timeout", cfg.Session.SearchTimeout.String())
	v.Set("session.mutation_timeout", cfg.Session.MutationTimeout.String())

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.Set("browser.command", cfg.Browser.Command)
	v.Set("browser.args", cfg.Browser.Args)

	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

// IsConfigured returns true if the catalog API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.OMDb.APIKey) != ""
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
