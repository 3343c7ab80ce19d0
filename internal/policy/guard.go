// Package policy holds the time-driven rules applied to stored collections:
// the once-per-day guard, the scheduled reset it backs, and retention pruning.
package policy

import (
	"fmt"
	"time"

	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/storage"
	"github.com/julianstephens/hearth/internal/utils"
)

// DailyGuard is a persisted marker holding the date key of the last day an
// action ran. A missing or unreadable marker counts as "not yet today".
type DailyGuard struct {
	Store storage.Provider
	Key   string
}

// Last returns the stored date key, or "" when none is stored.
func (g DailyGuard) Last() string {
	v, present, err := storage.Lookup(g.Store, g.Key)
	if err != nil {
		logger.Warn("Failed to read daily guard", "key", g.Key, "error", err)
		return ""
	}
	if !present {
		return ""
	}
	return v
}

// Due reports whether the guarded action has not yet run on now's calendar day.
func (g DailyGuard) Due(now time.Time) bool {
	return g.Last() != utils.DateKey(now)
}

// Mark records now's calendar day as done.
func (g DailyGuard) Mark(now time.Time) error {
	if err := g.Store.Set(g.Key, utils.DateKey(now)); err != nil {
		return fmt.Errorf("failed to mark %s: %w", g.Key, err)
	}
	return nil
}

// Clear forgets the marker so the action is due again.
func (g DailyGuard) Clear() error {
	if err := g.Store.Remove(g.Key); err != nil {
		return fmt.Errorf("failed to clear %s: %w", g.Key, err)
	}
	return nil
}
