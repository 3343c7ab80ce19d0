// Package collection manages one persisted list of entries. Every mutation is
// applied in memory first and then written back to the store as a full
// snapshot; a failed write is logged and the in-memory state stays
// authoritative for the session.
package collection

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hearth/internal/codec"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/policy"
	"github.com/julianstephens/hearth/internal/storage"
	"github.com/julianstephens/hearth/internal/utils"
)

// Placement decides where Add puts new entries.
type Placement int

const (
	// Append keeps a fixed checklist order.
	Append Placement = iota
	// Prepend shows the newest entry first.
	Prepend
)

// Options configures a Manager.
type Options struct {
	Key       string
	Defaults  func() []models.Entry
	Placement Placement
	Retention policy.Retention
	// EmptyFallsBack restores Defaults when the stored collection is an empty array.
	EmptyFallsBack bool
	Reset          *policy.ScheduledReset
	Now            func() time.Time
	NewID          func() string
}

// Manager owns the in-memory collection stored under one key.
type Manager struct {
	store   storage.Provider
	opts    Options
	entries []models.Entry
	status  codec.Status
	lastErr error
}

// Open loads the collection for opts.Key, falling back to defaults when the
// stored snapshot is absent or unusable, prunes expired entries and applies
// the scheduled reset if one is due.
func Open(store storage.Provider, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	m := &Manager{store: store, opts: opts}
	m.load()
	m.CheckScheduledReset()
	return m
}

func (m *Manager) load() {
	raw, present, err := storage.Lookup(m.store, m.opts.Key)
	if err != nil {
		logger.Warn("Failed to read collection, using defaults", "key", m.opts.Key, "error", err)
		present = false
	}

	res := codec.DecodeList(raw, present, codec.ListOptions[models.Entry]{
		Shape:          codec.EntryShape,
		Fallback:       m.defaults,
		Keep:           m.opts.Retention.Keep(m.opts.Now()),
		ID:             codec.EntryID,
		EmptyFallsBack: m.opts.EmptyFallsBack,
	})

	switch res.Status {
	case codec.Valid, codec.Absent:
		logger.Debug("Loaded collection", "key", m.opts.Key, "status", res.Status, "entries", len(res.Items))
	default:
		logger.Warn("Stored collection unusable, using defaults", "key", m.opts.Key, "status", res.Status)
	}
	if res.Dropped > 0 {
		logger.Warn("Dropped malformed or duplicate entries", "key", m.opts.Key, "count", res.Dropped)
	}
	if res.Pruned > 0 {
		logger.Debug("Pruned expired entries", "key", m.opts.Key, "count", res.Pruned)
	}

	m.entries = res.Items
	m.status = res.Status
}

func (m *Manager) defaults() []models.Entry {
	if m.opts.Defaults == nil {
		return nil
	}
	src := m.opts.Defaults()
	out := make([]models.Entry, len(src))
	copy(out, src)
	return out
}

func (m *Manager) now() time.Time {
	return m.opts.Now().UTC().Round(0)
}

func (m *Manager) persist() {
	raw, err := codec.Encode(m.entries)
	if err == nil {
		err = m.store.Set(m.opts.Key, raw)
	}
	m.lastErr = err
	if err != nil {
		logger.Warn("Failed to persist collection", "key", m.opts.Key, "error", err)
	}
}

func (m *Manager) index(id string) int {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) uniqueID() string {
	base := m.opts.NewID()
	id := base
	for n := 1; m.index(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// Add creates an incomplete entry. A blank title or a malformed due date is
// rejected without touching the collection.
func (m *Manager) Add(title, dueDate string) (models.Entry, bool) {
	title = strings.ToValidUTF8(strings.TrimSpace(title), "\uFFFD")
	dueDate = strings.TrimSpace(dueDate)
	if title == "" {
		return models.Entry{}, false
	}
	if dueDate != "" && !utils.ValidDateKey(dueDate) {
		return models.Entry{}, false
	}

	e := models.Entry{
		ID:        m.uniqueID(),
		Title:     title,
		DueDate:   dueDate,
		CreatedAt: m.now(),
	}
	if m.opts.Placement == Prepend {
		m.entries = append([]models.Entry{e}, m.entries...)
	} else {
		m.entries = append(m.entries, e)
	}
	m.persist()
	return e, true
}

// Toggle flips the completion state of id. It reports false for unknown ids.
func (m *Manager) Toggle(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	if m.entries[i].CompletedAt != nil {
		m.entries[i].CompletedAt = nil
	} else {
		ts := m.now()
		m.entries[i].CompletedAt = &ts
	}
	m.persist()
	return true
}

// Delete removes id. It reports false for unknown ids.
func (m *Manager) Delete(id string) bool {
	return m.DeleteMany([]string{id}) > 0
}

// DeleteMany removes every entry whose id is listed and returns how many went.
func (m *Manager) DeleteMany(ids []string) int {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := make([]models.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if _, ok := drop[e.ID]; !ok {
			kept = append(kept, e)
		}
	}
	removed := len(m.entries) - len(kept)
	if removed == 0 {
		return 0
	}
	m.entries = kept
	m.persist()
	return removed
}

// ResetAll marks every entry incomplete and returns how many were complete.
func (m *Manager) ResetAll() int {
	cleared := 0
	for i := range m.entries {
		if m.entries[i].CompletedAt != nil {
			m.entries[i].CompletedAt = nil
			cleared++
		}
	}
	m.persist()
	return cleared
}

// CheckScheduledReset applies the daily reset if it is due. Long-lived views
// call it periodically; Open calls it once.
func (m *Manager) CheckScheduledReset() bool {
	if m.opts.Reset == nil {
		return false
	}
	return m.opts.Reset.Check(m.opts.Now(), func() { m.ResetAll() })
}

// Entries returns a copy of the collection in display order.
func (m *Manager) Entries() []models.Entry {
	out := make([]models.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Get returns the entry with id.
func (m *Manager) Get(id string) (models.Entry, bool) {
	i := m.index(id)
	if i < 0 {
		return models.Entry{}, false
	}
	return m.entries[i], true
}

// Len returns the number of entries.
func (m *Manager) Len() int {
	return len(m.entries)
}

// CompletedCount returns the number of completed entries.
func (m *Manager) CompletedCount() int {
	n := 0
	for _, e := range m.entries {
		if e.Done() {
			n++
		}
	}
	return n
}

// DueToday lists incomplete entries due on now's calendar day.
func (m *Manager) DueToday(now time.Time) []models.Entry {
	var due []models.Entry
	for _, e := range m.entries {
		if !e.Done() && utils.IsDueTodayKey(e.DueDate, now) {
			due = append(due, e)
		}
	}
	return due
}

// Status reports how the collection was obtained at Open.
func (m *Manager) Status() codec.Status {
	return m.status
}

// Key returns the store key the collection lives under.
func (m *Manager) Key() string {
	return m.opts.Key
}

// Err returns the error from the most recent persist, if any.
func (m *Manager) Err() error {
	return m.lastErr
}
