package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nvara/traverse/internal/domain"
	"github.com/nvara/traverse/internal/testutil"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with no file: %v", err)
	}

	if cfg.ListTimeout != 10*time.Second {
		t.Errorf("list_timeout = %v, want 10s", cfg.ListTimeout)
	}
	if cfg.ShowHidden {
		t.Error("show_hidden should default to false")
	}
	if cfg.EndpointsFile == "" || cfg.DataDir == "" {
		t.Errorf("default paths missing: endpoints=%q data=%q", cfg.EndpointsFile, cfg.DataDir)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults = %q/%q", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	path := testutil.CreateTestFile(t, dir, "config.yaml", []byte(`
list_timeout: 3s
show_hidden: true
endpoints_file: `+filepath.Join(dir, "eps.yaml")+`
data_dir: `+dir+`
log:
  level: debug
`))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListTimeout != 3*time.Second {
		t.Errorf("list_timeout = %v", cfg.ListTimeout)
	}
	if !cfg.ShowHidden {
		t.Error("show_hidden not applied")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
	// Unset keys keep their defaults
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want default text", cfg.Log.Format)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	if !errors.Is(err, domain.ErrConfigNotFound) {
		t.Fatalf("err = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()
	path := testutil.CreateTestFile(t, dir, "config.yaml", []byte("list_timeout: [broken"))

	_, err := Load(path)
	if !errors.Is(err, domain.ErrConfigInvalid) {
		t.Fatalf("err = %v, want ErrConfigInvalid", err)
	}
}

func TestLoadFromString(t *testing.T) {
	cfg, err := LoadFromString(`
list_timeout: 1s
log:
  format: json
`)
	if err != nil {
		t.Fatalf("load from string: %v", err)
	}
	if cfg.ListTimeout != time.Second || cfg.Log.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		ListTimeout:   10 * time.Second,
		EndpointsFile: "/tmp/eps.yaml",
		DataDir:       "/tmp/data",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		mutate func(*Config)
		label  string
	}{
		{func(c *Config) { c.ListTimeout = 0 }, "zero timeout"},
		{func(c *Config) { c.EndpointsFile = "" }, "empty endpoints file"},
		{func(c *Config) { c.DataDir = "" }, "empty data dir"},
		{func(c *Config) { c.Log.File.Enabled = true }, "file logging without path"},
	}

	for _, tt := range tests {
		c := base
		tt.mutate(&c)
		if err := c.Validate(); !errors.Is(err, domain.ErrConfigInvalid) {
			t.Errorf("%s: err = %v, want ErrConfigInvalid", tt.label, err)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("~/data = %q", got)
	}
	if got := ExpandPath("~"); got != home {
		t.Errorf("~ = %q", got)
	}

	t.Setenv("TRAVERSE_TEST_DIR", "/opt/traverse")
	if got := ExpandPath("$TRAVERSE_TEST_DIR/cache"); got != "/opt/traverse/cache" {
		t.Errorf("env expansion = %q", got)
	}
}
