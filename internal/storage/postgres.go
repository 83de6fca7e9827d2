package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/mpriestly/slotbook/internal/constants"
	"github.com/mpriestly/slotbook/internal/logger"
	"github.com/mpriestly/slotbook/internal/models"
)

// PostgresCache stores snapshots in a PostgreSQL database, for users who want
// the cache shared across machines.
type PostgresCache struct {
	connStr string
	db      *sql.DB
}

func NewPostgresCache(connStr string) *PostgresCache {
	c := &PostgresCache{connStr: connStr}
	c.ensureSearchPath()
	return c
}

func (c *PostgresCache) ensureSearchPath() {
	u, err := url.Parse(c.connStr)
	if err != nil {
		logger.Warn("failed to parse Postgres connection string", "error", err)
		return
	}
	q := u.Query()
	if q.Get("search_path") == "" {
		q.Set("search_path", constants.AppName)
		u.RawQuery = q.Encode()
		c.connStr = u.String()
	}
}

func (c *PostgresCache) Init() error {
	db, err := sql.Open("postgres", c.connStr)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to reach cache database: %w", err)
	}
	c.db = db

	_, err = db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", constants.AppName))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id SERIAL PRIMARY KEY,
		taken_at TIMESTAMPTZ NOT NULL,
		payload JSONB NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return nil
}

func (c *PostgresCache) SaveSnapshot(state models.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = c.db.Exec("INSERT INTO snapshots (taken_at, payload) VALUES ($1, $2)",
		time.Now().UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	_, err = c.db.Exec(`DELETE FROM snapshots WHERE id NOT IN (
		SELECT id FROM snapshots ORDER BY id DESC LIMIT $1
	)`, KeepSnapshots)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}

func (c *PostgresCache) LatestSnapshot() (models.State, time.Time, error) {
	var (
		takenAt time.Time
		payload string
	)
	row := c.db.QueryRow("SELECT taken_at, payload FROM snapshots ORDER BY id DESC LIMIT 1")
	if err := row.Scan(&takenAt, &payload); err != nil {
		if err == sql.ErrNoRows {
			return models.State{}, time.Time{}, ErrNoSnapshot
		}
		// A missing table reads the same as an uninitialized cache.
		if strings.Contains(err.Error(), "does not exist") {
			return models.State{}, time.Time{}, ErrNoSnapshot
		}
		return models.State{}, time.Time{}, err
	}

	var state models.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return models.State{}, time.Time{}, fmt.Errorf("corrupt snapshot: %w", err)
	}
	return state, takenAt, nil
}

func (c *PostgresCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
