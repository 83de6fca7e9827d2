// Package storage caches the last successfully loaded schedule snapshot so
// read-only commands keep working when the API is unreachable. Two backends
// are supported: a local SQLite file (the default) and PostgreSQL, selected
// by the config string.
package storage

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/mpriestly/slotbook/internal/models"
)

// ErrNoSnapshot is returned when the cache holds no snapshot yet.
var ErrNoSnapshot = errors.New("no cached snapshot")

// KeepSnapshots is how many snapshots a backend retains; older rows are
// pruned on save.
const KeepSnapshots = 14

// Provider is a snapshot cache backend.
type Provider interface {
	// Init creates the backing schema, creating directories or tables as
	// needed.
	Init() error
	// SaveSnapshot stores a snapshot with the current timestamp and prunes
	// old rows.
	SaveSnapshot(state models.State) error
	// LatestSnapshot returns the most recent snapshot and when it was taken.
	// Returns ErrNoSnapshot if the cache is empty.
	LatestSnapshot() (models.State, time.Time, error)
	Close() error
}

// NewProvider selects a backend from the config string: PostgreSQL for
// postgres:// / postgresql:// connection strings, SQLite for anything else
// (treated as a file path).
func NewProvider(config string) Provider {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		return NewPostgresCache(config)
	}
	return NewSQLiteCache(config)
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password. Embedded credentials are refused; the token belongs in
// the OS keyring or the environment.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
