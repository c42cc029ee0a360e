package nav

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultRecentCap bounds the recent-locations view
const DefaultRecentCap = 10

// RecentStore persists the capped recent-locations list, independent of the
// in-memory back/forward stack
type RecentStore struct {
	db  *sql.DB
	cap int
}

// RecentLocation is one row of the recent view
type RecentLocation struct {
	Path      string
	VisitedAt time.Time
}

// NewRecentStore opens (and if needed creates) the store under dataDir
func NewRecentStore(dataDir string, capacity int) (*RecentStore, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}
	if capacity <= 0 {
		capacity = DefaultRecentCap
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "traverse.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Limit connection pool to prevent "database is locked" errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Enable WAL mode for better concurrency and set busy timeout
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode and busy timeout: %w", err)
	}

	store := &RecentStore{db: db, cap: capacity}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database schema
func (s *RecentStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recent_locations (
		path TEXT PRIMARY KEY,
		visited_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_recent_visited ON recent_locations(visited_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Touch records a visit to path, refreshing it if already present, and
// prunes the list down to the cap
func (s *RecentStore) Touch(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	query := `
		INSERT INTO recent_locations (path, visited_at) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET visited_at = excluded.visited_at
	`
	if _, err := s.db.Exec(query, path, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	prune := `
		DELETE FROM recent_locations WHERE path NOT IN (
			SELECT path FROM recent_locations ORDER BY visited_at DESC LIMIT ?
		)
	`
	if _, err := s.db.Exec(prune, s.cap); err != nil {
		return fmt.Errorf("failed to prune recent locations: %w", err)
	}

	return nil
}

// List returns the recent locations, newest first
func (s *RecentStore) List() ([]RecentLocation, error) {
	query := `
		SELECT path, visited_at FROM recent_locations
		ORDER BY visited_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, s.cap)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent locations: %w", err)
	}
	defer rows.Close()

	var result []RecentLocation
	for rows.Next() {
		var loc RecentLocation
		if err := rows.Scan(&loc.Path, &loc.VisitedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent location: %w", err)
		}
		result = append(result, loc)
	}

	return result, rows.Err()
}

// Forget removes a path from the recent view; absent paths are a no-op
func (s *RecentStore) Forget(path string) error {
	_, err := s.db.Exec("DELETE FROM recent_locations WHERE path = ?", path)
	return err
}

// Close releases the underlying database
func (s *RecentStore) Close() error {
	return s.db.Close()
}
