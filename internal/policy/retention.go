package policy

import (
	"time"

	"github.com/julianstephens/hearth/internal/models"
)

// Retention drops completed entries older than Window. A zero Window keeps everything.
type Retention struct {
	Window time.Duration
}

// Expired reports whether e completed more than Window before now.
func (r Retention) Expired(e models.Entry, now time.Time) bool {
	if r.Window <= 0 || e.CompletedAt == nil {
		return false
	}
	return now.Sub(*e.CompletedAt) > r.Window
}

// Keep returns a predicate that is false for entries expired as of now.
func (r Retention) Keep(now time.Time) func(models.Entry) bool {
	return func(e models.Entry) bool {
		return !r.Expired(e, now)
	}
}

// Prune returns the entries still inside the window, preserving order.
func (r Retention) Prune(entries []models.Entry, now time.Time) []models.Entry {
	keep := r.Keep(now)
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
