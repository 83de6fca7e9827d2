package cli

import (
	"context"
	"fmt"

	"github.com/mpriestly/slotbook/internal/gateway"
	"github.com/mpriestly/slotbook/internal/logger"
	"github.com/mpriestly/slotbook/internal/storage"
	"github.com/mpriestly/slotbook/internal/store"
)

// Context is the shared dependency bundle passed to every command.
type Context struct {
	Store   *store.Store
	Gateway *gateway.Client
	Cache   storage.Provider

	APIURL string
	WSURL  string
}

// LoadSchedule performs the initial load from the API and, on success, caches
// the snapshot for offline use. Cache failures are logged, not surfaced; the
// cache is best effort.
func (c *Context) LoadSchedule(ctx context.Context) error {
	if err := c.Store.LoadInitial(ctx); err != nil {
		return err
	}
	if c.Cache != nil {
		if err := c.Cache.Init(); err != nil {
			logger.Warn("snapshot cache unavailable", "error", err)
			return nil
		}
		if err := c.Cache.SaveSnapshot(c.Store.Snapshot()); err != nil {
			logger.Warn("failed to cache snapshot", "error", err)
		}
	}
	return nil
}

// LoadOffline restores the most recent cached snapshot into the store.
func (c *Context) LoadOffline() error {
	if c.Cache == nil {
		return storage.ErrNoSnapshot
	}
	if err := c.Cache.Init(); err != nil {
		return err
	}
	state, takenAt, err := c.Cache.LatestSnapshot()
	if err != nil {
		return err
	}
	c.Store.Restore(state)
	logger.Info("restored cached snapshot", "taken_at", takenAt)
	return nil
}

// FormatSpots renders a spot count the way the schedule UI words it.
func FormatSpots(spots int) string {
	switch spots {
	case 0:
		return "no spots remaining"
	case 1:
		return "1 spot remaining"
	default:
		return fmt.Sprintf("%d spots remaining", spots)
	}
}
