package endpoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/nvara/traverse/internal/domain"
	"github.com/nvara/traverse/internal/logger"
)

// Store persists endpoint profiles to a YAML file. Another window of the
// application may rewrite the same file; Watch feeds those out-of-band
// edits back into the registry.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads all profiles from the store file
// A missing file is an empty store, not an error
func (s *Store) Load() ([]domain.EndpointProfile, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	var payload struct {
		Endpoints []domain.EndpointProfile `mapstructure:"endpoints"`
	}
	if err := v.Unmarshal(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	return payload.Endpoints, nil
}

// Save writes the full profile set to the store file, creating the parent
// directory if needed
func (s *Store) Save(profiles []domain.EndpointProfile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	records := make([]map[string]any, 0, len(profiles))
	for _, p := range profiles {
		records = append(records, map[string]any{
			"name":       p.Name,
			"host":       p.Host,
			"port":       p.Port,
			"username":   p.Username,
			"credential": p.Credential,
		})
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	v.Set("endpoints", records)
	return v.WriteConfigAs(s.path)
}

// Watch reloads the registry whenever the store file changes on disk.
// Editors and other windows tend to emit bursts of write events, so
// reloads are debounced. Blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, registry *Registry) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: the file itself may be replaced by rename,
	// which drops a watch placed directly on it
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return err
	}

	log := logger.With("component", "endpoint-store")

	const debounce = 200 * time.Millisecond
	var timer *time.Timer
	var timerC <-chan time.Time

	reload := func() {
		profiles, err := s.Load()
		if err != nil {
			log.Warn("reload after store change failed", "error", err)
			return
		}
		registry.ReplaceAll(profiles)
		log.Info("endpoint store reloaded", "profiles", len(profiles))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("store watcher error", "error", err)
		}
	}
}
