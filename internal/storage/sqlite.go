package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mpriestly/slotbook/internal/models"
)

// SQLiteCache stores snapshots in a local SQLite file.
type SQLiteCache struct {
	path string
	db   *sql.DB
}

func NewSQLiteCache(path string) *SQLiteCache {
	return &SQLiteCache{path: expandHome(path)}
}

func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func (c *SQLiteCache) Init() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	c.db = db

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		taken_at TEXT NOT NULL,
		payload TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return nil
}

func (c *SQLiteCache) SaveSnapshot(state models.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = c.db.Exec("INSERT INTO snapshots (taken_at, payload) VALUES (?, ?)",
		time.Now().UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	_, err = c.db.Exec(`DELETE FROM snapshots WHERE id NOT IN (
		SELECT id FROM snapshots ORDER BY id DESC LIMIT ?
	)`, KeepSnapshots)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}

func (c *SQLiteCache) LatestSnapshot() (models.State, time.Time, error) {
	var (
		takenAt string
		payload string
	)
	row := c.db.QueryRow("SELECT taken_at, payload FROM snapshots ORDER BY id DESC LIMIT 1")
	if err := row.Scan(&takenAt, &payload); err != nil {
		if err == sql.ErrNoRows {
			return models.State{}, time.Time{}, ErrNoSnapshot
		}
		return models.State{}, time.Time{}, err
	}

	var state models.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return models.State{}, time.Time{}, fmt.Errorf("corrupt snapshot: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, takenAt)
	if err != nil {
		return models.State{}, time.Time{}, fmt.Errorf("corrupt snapshot timestamp: %w", err)
	}
	return state, ts, nil
}

func (c *SQLiteCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
