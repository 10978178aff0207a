package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// MailboxConfig holds the optional IMAP capture settings. When Host is
// empty the mail capture command is disabled.
type MailboxConfig struct {
	// Host is the IMAP server address, e.g. imap.example.com:993.
	Host string `mapstructure:"host" yaml:"host"`

	// Username is the mailbox login; the password lives in the keyring.
	Username string `mapstructure:"username" yaml:"username"`

	// Folder is the mailbox folder scanned for flagged messages.
	Folder string `mapstructure:"folder" yaml:"folder"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme    string `mapstructure:"theme" yaml:"theme"`
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// APIBaseURL is the root of the Sonic Task Hub REST backend,
	// including the /api prefix.
	APIBaseURL string `mapstructure:"api_base_url" yaml:"api_base_url"`

	// CachePath is the sqlite file used for the offline read cache.
	CachePath string `mapstructure:"cache_path" yaml:"cache_path"`

	// UnsnoozeIntervalSec is how often the background poller sweeps
	// for snoozed items whose wake time has passed.
	UnsnoozeIntervalSec int `mapstructure:"unsnooze_interval_sec" yaml:"unsnooze_interval_sec"`

	Mailbox MailboxConfig `mapstructure:"mailbox" yaml:"mailbox"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/sonichub/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "sonichub", "config.yaml")
}

// defaultCachePath returns the default sqlite cache location next to the
// config file.
func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cache.db")
	}
	return filepath.Join(home, ".config", "sonichub", "cache.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		APIBaseURL:          "http://localhost:8080/api",
		CachePath:           defaultCachePath(),
		UnsnoozeIntervalSec: 120,
		Mailbox: MailboxConfig{
			Folder: "INBOX",
		},
		Display: DisplayConfig{
			Theme:    "default",
			PageSize: 20,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api_base_url", "http://localhost:8080/api")
	v.SetDefault("cache_path", defaultCachePath())
	v.SetDefault("unsnooze_interval_sec", 120)
	v.SetDefault("mailbox.folder", "INBOX")
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.page_size", 20)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.PageSize <= 0 {
		cfg.Display.PageSize = 20
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api_base_url", cfg.APIBaseURL)
	v.Set("cache_path", cfg.CachePath)
	v.Set("unsnooze_interval_sec", cfg.UnsnoozeIntervalSec)
	v.Set("mailbox", cfg.Mailbox)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
