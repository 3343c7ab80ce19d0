// Package diary stores one line of text per calendar day and lays the days
// out as a month calendar.
package diary

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/hearth/internal/codec"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/storage"
	"github.com/julianstephens/hearth/internal/utils"
)

// ErrFutureDate is returned when writing to a day that has not happened yet.
var ErrFutureDate = errors.New("cannot write a diary entry for a future date")

// Diary owns the date-keyed diary map.
type Diary struct {
	store   storage.Provider
	key     string
	now     func() time.Time
	entries models.DiaryMap
	status  codec.Status
	lastErr error
}

// Options configures a Diary.
type Options struct {
	Key string
	Now func() time.Time
}

// Open loads the diary map. Unusable data falls back to an empty diary and
// entries with a malformed date key or a non-string value are dropped.
func Open(store storage.Provider, opts Options) *Diary {
	if opts.Key == "" {
		opts.Key = constants.KeyDiary
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	d := &Diary{store: store, key: opts.Key, now: opts.Now}

	raw, present, err := storage.Lookup(store, d.key)
	if err != nil {
		logger.Warn("Failed to read diary, starting empty", "key", d.key, "error", err)
		present = false
	}
	res := codec.DecodeMap(raw, present, codec.MapOptions[string]{
		ValidKey: utils.ValidDateKey,
		Value:    codec.StringValue,
	})
	if res.Status.FellBack() && res.Status != codec.Absent {
		logger.Warn("Stored diary unusable, starting empty", "key", d.key, "status", res.Status)
	}
	if res.Dropped > 0 {
		logger.Warn("Dropped malformed diary entries", "key", d.key, "count", res.Dropped)
	}

	d.entries = models.DiaryMap(res.Values)
	d.status = res.Status
	return d
}

func (d *Diary) persist() {
	raw, err := codec.Encode(map[string]string(d.entries))
	if err == nil {
		err = d.store.Set(d.key, raw)
	}
	d.lastErr = err
	if err != nil {
		logger.Warn("Failed to persist diary", "key", d.key, "error", err)
	}
}

// Write stores text for date's calendar day, replacing any earlier text.
// Blank text removes the day's entry.
func (d *Diary) Write(date time.Time, text string) error {
	if utils.IsFuture(date, d.now()) {
		return ErrFutureDate
	}
	// Blank text is not stored as an entry: the day reads as unwritten
	// everywhere, so the key is removed instead of holding "".
	if strings.TrimSpace(text) == "" {
		d.Clear(date)
		return nil
	}
	d.entries[utils.DateKey(date)] = strings.ToValidUTF8(text, "\uFFFD")
	d.persist()
	return nil
}

// Read returns the text stored for date's calendar day.
func (d *Diary) Read(date time.Time) (string, bool) {
	text, ok := d.entries[utils.DateKey(date)]
	return text, ok
}

// Clear removes date's entry. It reports false when there was none.
func (d *Diary) Clear(date time.Time) bool {
	key := utils.DateKey(date)
	if _, ok := d.entries[key]; !ok {
		return false
	}
	delete(d.entries, key)
	d.persist()
	return true
}

// HasEntry reports whether date's calendar day has non-blank text.
func (d *Diary) HasEntry(date time.Time) bool {
	return strings.TrimSpace(d.entries[utils.DateKey(date)]) != ""
}

// Dates returns every date key with an entry, oldest first.
func (d *Diary) Dates() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored days.
func (d *Diary) Len() int {
	return len(d.entries)
}

// Status reports how the diary was obtained at Open.
func (d *Diary) Status() codec.Status {
	return d.status
}

// Err returns the error from the most recent persist, if any.
func (d *Diary) Err() error {
	return d.lastErr
}
