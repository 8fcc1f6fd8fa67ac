package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the Tova configuration
type Config struct {
	ProjectName string       `mapstructure:"project_name"`
	Server      ServerConfig `mapstructure:"server"`
	Build       BuildConfig  `mapstructure:"build"`
}

// ServerConfig configures the dev-tooling HTTP/WS server (internal/devserver),
// not any server the compiled program itself runs.
type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	Host          string `mapstructure:"host"`
	APIPrefix     string `mapstructure:"api_prefix"`
	LogLevel      string `mapstructure:"log_level"`
	CacheSize     int    `mapstructure:"cache_size"`
	WatchDebounce int    `mapstructure:"watch_debounce_ms"`
}

// BuildConfig represents build configuration
type BuildConfig struct {
	Output       string `mapstructure:"output"`
	GeneratedDir string `mapstructure:"generated_dir"`
}

// Load loads the configuration from tova.yml or tova.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 4417)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.api_prefix", "")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cache_size", 256)
	v.SetDefault("server.watch_debounce_ms", 300)
	v.SetDefault("build.output", "build/app")
	v.SetDefault("build.generated_dir", "build/generated")

	// Set config name and paths
	v.SetConfigName("tova")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject checks if the current directory is a Tova project
func InProject() bool {
	// Check if app directory exists
	if _, err := os.Stat("app"); err != nil {
		return false
	}

	// Check if tova.yml or tova.yaml exists
	if _, err := os.Stat("tova.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("tova.yaml"); err == nil {
		return true
	}

	return false
}

// GetProjectRoot tries to find the project root by looking for tova.yml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		// Check for tova.yml or tova.yaml
		if _, err := os.Stat(filepath.Join(dir, "tova.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "tova.yaml")); err == nil {
			return dir, nil
		}

		// Check for app directory as fallback
		if _, err := os.Stat(filepath.Join(dir, "app")); err == nil {
			return dir, nil
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("not in a Tova project (no tova.yml found)")
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	// Validate API prefix format
	if cfg.Server.APIPrefix != "" {
		if !strings.HasPrefix(cfg.Server.APIPrefix, "/") {
			return fmt.Errorf("server.api_prefix must start with '/', got: %s", cfg.Server.APIPrefix)
		}
		if strings.HasSuffix(cfg.Server.APIPrefix, "/") {
			return fmt.Errorf("server.api_prefix must not end with '/', got: %s", cfg.Server.APIPrefix)
		}
	}
	return nil
}
