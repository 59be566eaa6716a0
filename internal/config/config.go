package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	AniList AniListConfig `mapstructure:"anilist"`
	Account AccountConfig `mapstructure:"account"`
	Artwork ArtworkConfig `mapstructure:"artwork"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AniListConfig holds metadata API configuration
type AniListConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"` // background cache refresh
}

// AccountConfig holds the account/list service configuration
type AccountConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	ProjectID  string `mapstructure:"project_id"`
	DatabaseID string `mapstructure:"database_id"`
	Session    string `mapstructure:"session"` // stored session secret
}

// ArtworkConfig holds the image-metadata lookup configuration
type ArtworkConfig struct {
	FanartEndpoint string `mapstructure:"fanart_endpoint"`
	FanartAPIKey   string `mapstructure:"fanart_api_key"`
	TVDBEndpoint   string `mapstructure:"tvdb_endpoint"`
	TVDBAPIKey     string `mapstructure:"tvdb_api_key"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme     string `mapstructure:"theme"`
	SlateSize int    `mapstructure:"slate_size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		AniList: AniListConfig{
			Endpoint:        "https://graphql.anilist.co",
			RefreshInterval: 20 * time.Minute,
		},
		Account: AccountConfig{
			Endpoint: "",
		},
		Artwork: ArtworkConfig{
			FanartEndpoint: "https://webservice.fanart.tv/v3",
			TVDBEndpoint:   "https://api4.thetvdb.com/v4",
		},
		UI: UIConfig{
			Theme:     "default",
			SlateSize: 5,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "arc", "arc.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "arc", "arc.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "arc")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "arc")
	}
}

// defaultStatePath returns the persistent state directory for the current OS
func defaultStatePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "arc", "state")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "arc", "state")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("ARC")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveSession updates just the stored account session in the config file
func SaveSession(session string) error {
	viper.Set("account.session", session)

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetStatePath returns the persistent state directory
func GetStatePath() string {
	return defaultStatePath()
}

// ClearState removes all persisted cache and rotation state
func ClearState() error {
	if err := os.RemoveAll(defaultStatePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
