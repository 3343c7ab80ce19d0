package policy

import (
	"testing"
	"time"

	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/storage"
)

func at(day, hour int) time.Time {
	return time.Date(2026, 4, day, hour, 0, 0, 0, time.UTC)
}

func TestDailyGuard(t *testing.T) {
	store := storage.NewMemoryStore()
	g := DailyGuard{Store: store, Key: "flag"}

	if !g.Due(at(1, 9)) {
		t.Fatal("expected guard to be due with no stored flag")
	}
	if err := g.Mark(at(1, 9)); err != nil {
		t.Fatalf("Mark failed: %v", err)
	}
	if g.Due(at(1, 23)) {
		t.Error("expected guard not due later the same day")
	}
	if !g.Due(at(2, 0)) {
		t.Error("expected guard due on the next day")
	}
	if got := g.Last(); got != "2026-04-01" {
		t.Errorf("expected stored flag 2026-04-01, got %q", got)
	}

	if err := g.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if !g.Due(at(1, 9)) {
		t.Error("expected guard due after Clear")
	}
}

func TestDailyGuardMarkFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWrites = true
	g := DailyGuard{Store: store, Key: "flag"}

	if err := g.Mark(at(1, 9)); err == nil {
		t.Error("expected Mark to fail on a failing store")
	}
}

func TestScheduledReset(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		now    time.Time
		expect bool
	}{
		{"before trigger hour", "", at(1, 17), false},
		{"at trigger hour", "", at(1, 18), true},
		{"after trigger hour", "2026-03-31", at(1, 22), true},
		{"already fired today", "2026-04-01", at(1, 20), false},
		{"next day before trigger", "2026-04-01", at(2, 10), false},
		{"skipped days no catch-up", "2026-03-20", at(1, 7), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			if tt.flag != "" {
				_ = store.Set("reset", tt.flag)
			}
			r := ScheduledReset{Guard: DailyGuard{Store: store, Key: "reset"}, TriggerHour: 18}

			calls := 0
			fired := r.Check(tt.now, func() { calls++ })
			if fired != tt.expect {
				t.Errorf("expected fired=%v, got %v", tt.expect, fired)
			}
			if fired && calls != 1 {
				t.Errorf("expected reset to run once, ran %d times", calls)
			}
			if !fired && calls != 0 {
				t.Errorf("expected reset not to run, ran %d times", calls)
			}
		})
	}
}

func TestScheduledResetIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	r := ScheduledReset{Guard: DailyGuard{Store: store, Key: "reset"}, TriggerHour: 18}

	calls := 0
	for _, h := range []int{18, 19, 21, 23} {
		r.Check(at(1, h), func() { calls++ })
	}
	if calls != 1 {
		t.Errorf("expected one reset per day, got %d", calls)
	}

	r.Check(at(2, 18), func() { calls++ })
	if calls != 2 {
		t.Errorf("expected reset on the following day, got %d total", calls)
	}
}

func TestScheduledResetFlagWriteFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWrites = true
	r := ScheduledReset{Guard: DailyGuard{Store: store, Key: "reset"}, TriggerHour: 18}

	if !r.Check(at(1, 19), func() {}) {
		t.Error("expected reset to apply even when the flag cannot be saved")
	}
}

func TestRetention(t *testing.T) {
	now := at(10, 12)
	done := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}
	entries := []models.Entry{
		{ID: "open", Title: "open"},
		{ID: "recent", Title: "recent", CompletedAt: done(24 * time.Hour)},
		{ID: "edge", Title: "edge", CompletedAt: done(7 * 24 * time.Hour)},
		{ID: "old", Title: "old", CompletedAt: done(7*24*time.Hour + time.Second)},
	}

	r := Retention{Window: 7 * 24 * time.Hour}
	kept := r.Prune(entries, now)

	ids := make([]string, 0, len(kept))
	for _, e := range kept {
		ids = append(ids, e.ID)
	}
	want := []string{"open", "recent", "edge"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
}

func TestRetentionZeroWindowKeepsAll(t *testing.T) {
	old := at(1, 0).AddDate(-1, 0, 0)
	r := Retention{}
	if r.Expired(models.Entry{ID: "x", CompletedAt: &old}, at(10, 0)) {
		t.Error("expected zero window to keep everything")
	}
}
