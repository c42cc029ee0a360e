package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nvara/traverse/internal/domain"
)

// Config represents the complete configuration for traverse
type Config struct {
	// ListTimeout bounds every directory listing call
	ListTimeout time.Duration `mapstructure:"list_timeout"`

	// ShowHidden is the default for the hidden-entry filter
	ShowHidden bool `mapstructure:"show_hidden"`

	// EndpointsFile is the persisted endpoint store location
	EndpointsFile string `mapstructure:"endpoints_file"`

	// DataDir holds the session database
	DataDir string `mapstructure:"data_dir"`

	// Log configures the logging subsystem
	Log LogConfig `mapstructure:"log"`
}

// LogConfig is the logging section of the config file
type LogConfig struct {
	Level  string  `mapstructure:"level"`
	Format string  `mapstructure:"format"`
	File   LogFile `mapstructure:"file"`
}

// LogFile configures the rotated log file
type LogFile struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks if the configuration is complete and consistent
func (c *Config) Validate() error {
	if c.ListTimeout <= 0 {
		return fmt.Errorf("%w: list_timeout must be positive", domain.ErrConfigInvalid)
	}
	if c.EndpointsFile == "" {
		return fmt.Errorf("%w: endpoints_file cannot be empty", domain.ErrConfigInvalid)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir cannot be empty", domain.ErrConfigInvalid)
	}
	if c.Log.File.Enabled && c.Log.File.Path == "" {
		return fmt.Errorf("%w: log.file.path required when file logging is enabled", domain.ErrConfigInvalid)
	}
	return nil
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	// Expand ~ to home directory
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	// Expand environment variables
	path = os.ExpandEnv(path)
	return filepath.Clean(path)
}
