package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nvara/traverse/internal/domain"
)

// DefaultConfigPaths returns the default paths to search for config files
func DefaultConfigPaths() []string {
	paths := []string{
		".",
		"./configs",
	}

	// Add user config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "traverse"))
	}

	// Add home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "traverse"))
		paths = append(paths, filepath.Join(homeDir, ".traverse"))
	}

	return paths
}

// defaultDataDir is where the session database and endpoints file live
// when the config does not say otherwise
func defaultDataDir() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "traverse")
	}
	return ".traverse"
}

// setDefaults registers fallback values so a missing config file still
// yields a usable configuration
func setDefaults(v *viper.Viper) {
	dataDir := defaultDataDir()
	v.SetDefault("list_timeout", 10*time.Second)
	v.SetDefault("show_hidden", false)
	v.SetDefault("endpoints_file", filepath.Join(dataDir, "endpoints.yaml"))
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.max_size_mb", 10)
	v.SetDefault("log.file.max_age_days", 30)
	v.SetDefault("log.file.max_backups", 5)
}

// Load reads and parses a configuration file
// If path is empty, searches default locations for config.yaml; a missing
// file falls back to the defaults rather than failing
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		// Use specific file
		v.SetConfigFile(path)
	} else {
		// Search default paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Search miss: run on defaults
		} else if os.IsNotExist(err) {
			if path != "" {
				return nil, domain.ErrConfigNotFound
			}
		} else {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	cfg.EndpointsFile = ExpandPath(cfg.EndpointsFile)
	cfg.DataDir = ExpandPath(cfg.DataDir)
	if cfg.Log.File.Path != "" {
		cfg.Log.File.Path = ExpandPath(cfg.Log.File.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromString parses configuration from a YAML string
func LoadFromString(yamlContent string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if err := v.ReadConfig(strings.NewReader(yamlContent)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
