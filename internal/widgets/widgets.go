// Package widgets wires the entry manager into the two checklist widgets:
// the night routine and the todo list.
package widgets

import (
	"time"

	"github.com/julianstephens/hearth/internal/collection"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/policy"
	"github.com/julianstephens/hearth/internal/storage"
)

// NightRoutineDefaults returns the starter checklist.
func NightRoutineDefaults() []models.Entry {
	return []models.Entry{
		{ID: "lock", Title: "Lock the door"},
		{ID: "teeth", Title: "Brush teeth"},
		{ID: "water", Title: "Drink water"},
		{ID: "clothes", Title: "Lay out tomorrow's clothes"},
	}
}

// NightRoutineOptions configures the night-routine widget.
type NightRoutineOptions struct {
	ResetHour int
	Now       func() time.Time
	NewID     func() string
}

// NightRoutineReset returns the daily reset policy for the night routine.
func NightRoutineReset(store storage.Provider, hour int) *policy.ScheduledReset {
	return &policy.ScheduledReset{
		Guard:       policy.DailyGuard{Store: store, Key: constants.KeyNightRoutineReset},
		TriggerHour: hour,
	}
}

// NewNightRoutine opens the night-routine checklist. Entries keep their
// order and every check mark is cleared once a day at ResetHour. An emptied
// routine comes back with the default tasks on the next load.
func NewNightRoutine(store storage.Provider, opts NightRoutineOptions) *collection.Manager {
	return collection.Open(store, collection.Options{
		Key:            constants.KeyNightRoutine,
		Defaults:       NightRoutineDefaults,
		Placement:      collection.Append,
		EmptyFallsBack: true,
		Reset:          NightRoutineReset(store, opts.ResetHour),
		Now:            opts.Now,
		NewID:          opts.NewID,
	})
}

// TodoOptions configures the todo widget.
type TodoOptions struct {
	Retention time.Duration
	Now       func() time.Time
	NewID     func() string
}

// NewTodo opens the todo list. New entries go first and completed entries
// older than Retention are dropped on load.
func NewTodo(store storage.Provider, opts TodoOptions) *collection.Manager {
	if opts.Retention <= 0 {
		opts.Retention = constants.DefaultRetention
	}
	return collection.Open(store, collection.Options{
		Key:       constants.KeyTodo,
		Placement: collection.Prepend,
		Retention: policy.Retention{Window: opts.Retention},
		Now:       opts.Now,
		NewID:     opts.NewID,
	})
}
