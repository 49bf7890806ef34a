package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName   = "herodex"
	envPrefix = "HERODEX"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`

	path string // file the config was loaded from or will be saved to
}

// APIConfig holds Marvel API configuration
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	PublicKey  string        `mapstructure:"public_key"`
	PrivateKey string        `mapstructure:"private_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds local record storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt file; empty keeps records in memory
	Key  string `mapstructure:"key"`
}

// CatalogConfig holds pagination configuration
type CatalogConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"` // 0 keeps notifications until dismissed
	Viewer        string        `mapstructure:"viewer"`         // image viewer command, empty for system default
	ViewerArgs    []string      `mapstructure:"viewer_args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://gateway.marvel.com/v1/public",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "herodex.db"),
			Key:  "marvel-custom-heroes",
		},
		Catalog: CatalogConfig{
			PageSize: 20,
		},
		UI: UIConfig{
			ToastDuration: 5 * time.Second,
			ViewerArgs:    []string{},
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "herodex.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// DefaultFile returns the config file written by SaveConfig when no
// explicit path was given
func DefaultFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// newViper returns a viper instance with defaults and env overrides bound
func newViper() *viper.Viper {
	v := viper.New()
	setValues(v, DefaultConfig(), v.SetDefault)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment. An empty
// path searches the default config directory and the working directory.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.path = path
	if cfg.path == "" {
		cfg.path = v.ConfigFileUsed()
	}
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)

	return cfg, nil
}

// SaveConfig writes the full configuration as YAML to the file it was
// loaded from, or the default config file.
func SaveConfig(cfg *Config) error {
	path := cfg.path
	if path == "" {
		path = DefaultFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setValues(v, cfg, v.Set)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg.path = path
	return nil
}

// setValues copies cfg into viper under snake_case keys
func setValues(v *viper.Viper, cfg *Config, set func(key string, value any)) {
	set("api.base_url", cfg.API.BaseURL)
	set("api.public_key", cfg.API.PublicKey)
	set("api.private_key", cfg.API.PrivateKey)
	set("api.timeout", cfg.API.Timeout.String())

	set("storage.path", cfg.Storage.Path)
	set("storage.key", cfg.Storage.Key)

	set("catalog.page_size", cfg.Catalog.PageSize)

	set("ui.toast_duration", cfg.UI.ToastDuration.String())
	set("ui.viewer", cfg.UI.Viewer)
	set("ui.viewer_args", cfg.UI.ViewerArgs)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// Path returns the file this config is bound to, if any
func (c *Config) Path() string {
	return c.path
}

// SetPath binds the config to a file for SaveConfig
func (c *Config) SetPath(path string) {
	c.path = path
}

// IsConfigured returns true if both API keys are set
func (c *Config) IsConfigured() bool {
	return c.API.PublicKey != "" && c.API.PrivateKey != ""
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
