package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default Radio-Browser API mirror and top-voted fetch size.
const (
	DefaultAPIBaseURL = "https://de1.api.radio-browser.info/json"
	DefaultTopLimit   = 50
)

// Config holds all configuration for the application
type Config struct {
	// DBPath is the path to the Navidrome SQLite database file. The schema of
	// that file is owned by Navidrome; this tool only reads and inserts rows.
	DBPath string `yaml:"db_path"`

	// APIBaseURL is the Radio-Browser mirror to query.
	APIBaseURL string `yaml:"api_base_url"`

	// TopLimit is how many stations a top-voted browse fetches.
	TopLimit int `yaml:"top_limit"`
}

// NewConfig loads configuration with the following priority:
// Environment variables > Config file (required)
func NewConfig() (*Config, error) {
	// A .env file in the working directory may carry the overrides.
	_ = godotenv.Load()

	config := &Config{}
	if err := loadConfigFile(config); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found. Please run 'navirad config init' to create it")
		}
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Apply environment variables (can override config file)
	if envPath := os.Getenv("NAVIRAD_DB_PATH"); envPath != "" {
		config.DBPath = envPath
	}
	if envBase := os.Getenv("NAVIRAD_API_BASE_URL"); envBase != "" {
		config.APIBaseURL = envBase
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.TopLimit <= 0 {
		c.TopLimit = DefaultTopLimit
	}
}

// InitConfig creates a new configuration file pointing at the given database path
func InitConfig(dbPath string) error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := getConfigFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	if dbPath == "" {
		dbPath = "/path/to/navidrome.db"
	}

	content := fmt.Sprintf(
		"# navirad configuration\ndb_path: %q\napi_base_url: %q\ntop_limit: %d\n",
		dbPath, DefaultAPIBaseURL, DefaultTopLimit,
	)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	return getConfigFilePath()
}

// getConfigDir returns the configuration directory path (~/.navirad)
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".navirad"), nil
}

// getConfigFilePath returns the full path to the config file
func getConfigFilePath() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// loadConfigFile loads configuration from ~/.navirad/config.yaml
func loadConfigFile(config *Config) error {
	configPath, err := getConfigFilePath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}
