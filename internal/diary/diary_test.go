package diary

import (
	"testing"
	"time"

	"github.com/julianstephens/hearth/internal/codec"
	"github.com/julianstephens/hearth/internal/storage"
)

var today = time.Date(2026, 4, 15, 20, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2026, 4, d, 9, 0, 0, 0, time.UTC)
}

func openDiary(store storage.Provider) *Diary {
	return Open(store, Options{Key: "diary", Now: func() time.Time { return today }})
}

func TestWriteReadOverwrite(t *testing.T) {
	store := storage.NewMemoryStore()
	d := openDiary(store)

	if err := d.Write(day(14), "went hiking"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := d.Write(day(14), "went hiking, then rain"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	text, ok := d.Read(day(14))
	if !ok || text != "went hiking, then rain" {
		t.Errorf("expected overwritten text, got %q (ok=%v)", text, ok)
	}
	if d.Len() != 1 {
		t.Errorf("expected one entry per day, got %d", d.Len())
	}

	reloaded := openDiary(store)
	if text, _ := reloaded.Read(day(14)); text != "went hiking, then rain" {
		t.Errorf("expected entry to survive reload, got %q", text)
	}
}

func TestWriteToday(t *testing.T) {
	d := openDiary(storage.NewMemoryStore())
	late := time.Date(2026, 4, 15, 23, 59, 0, 0, time.UTC)
	if err := d.Write(late, "late note"); err != nil {
		t.Errorf("expected writing today to succeed, got %v", err)
	}
}

func TestWriteFutureRejected(t *testing.T) {
	store := storage.NewMemoryStore()
	d := openDiary(store)

	if err := d.Write(day(16), "tomorrow"); err != ErrFutureDate {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
	if d.Len() != 0 || store.Writes != 0 {
		t.Error("expected future write to leave the diary untouched")
	}
}

func TestBlankWriteClears(t *testing.T) {
	d := openDiary(storage.NewMemoryStore())
	_ = d.Write(day(10), "note")
	if err := d.Write(day(10), "   "); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, ok := d.Read(day(10)); ok {
		t.Error("expected blank write to remove the entry")
	}
}

func TestClear(t *testing.T) {
	d := openDiary(storage.NewMemoryStore())
	_ = d.Write(day(3), "note")

	if !d.Clear(day(3)) {
		t.Error("expected Clear to remove the entry")
	}
	if d.Clear(day(3)) {
		t.Error("expected second Clear to be a no-op")
	}
}

func TestOpenFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		status codec.Status
		want   int
	}{
		{"corrupt", "{oops", codec.Unparseable, 0},
		{"array", `["x"]`, codec.WrongShape, 0},
		{"bad keys dropped", `{"2026-04-01":"ok","April 2":"no","2026-04-03":7}`, codec.Valid, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			_ = store.Set("diary", tt.raw)
			d := openDiary(store)
			if d.Status() != tt.status {
				t.Errorf("expected status %v, got %v", tt.status, d.Status())
			}
			if d.Len() != tt.want {
				t.Errorf("expected %d entries, got %d", tt.want, d.Len())
			}
		})
	}
}

func TestDates(t *testing.T) {
	d := openDiary(storage.NewMemoryStore())
	_ = d.Write(day(12), "b")
	_ = d.Write(day(2), "a")

	got := d.Dates()
	if len(got) != 2 || got[0] != "2026-04-02" || got[1] != "2026-04-12" {
		t.Errorf("unexpected dates %v", got)
	}
}

func TestMonth(t *testing.T) {
	d := openDiary(storage.NewMemoryStore())
	_ = d.Write(day(1), "first")
	_ = d.Write(day(15), "today")

	m := d.Month(day(20), today)
	if m.Year != 2026 || m.Month != time.April {
		t.Fatalf("unexpected month %d-%v", m.Year, m.Month)
	}
	// April 2026 starts on a Wednesday and has 30 days
	if len(m.Cells) != 33 {
		t.Fatalf("expected 33 cells, got %d", len(m.Cells))
	}
	for i := 0; i < 3; i++ {
		if !m.Cells[i].Blank {
			t.Errorf("expected cell %d to be blank", i)
		}
	}

	first := m.Cells[3]
	if first.Day != 1 || !first.HasEntry || first.IsToday || first.IsFuture {
		t.Errorf("unexpected first-day cell %+v", first)
	}
	mid := m.Cells[3+14]
	if mid.Day != 15 || !mid.IsToday || !mid.HasEntry || mid.IsFuture {
		t.Errorf("unexpected today cell %+v", mid)
	}
	next := m.Cells[3+15]
	if next.Day != 16 || !next.IsFuture || next.IsToday {
		t.Errorf("unexpected tomorrow cell %+v", next)
	}

	if m.Written() != 2 {
		t.Errorf("expected 2 written days, got %d", m.Written())
	}
	weeks := m.Weeks()
	if len(weeks) != 5 || len(weeks[0]) != 7 || len(weeks[4]) != 5 {
		t.Errorf("unexpected week layout: %d weeks, last has %d", len(weeks), len(weeks[len(weeks)-1]))
	}
}

func TestInvalidUTF8TextRoundTrips(t *testing.T) {
	store := storage.NewMemoryStore()
	d := openDiary(store)
	if err := d.Write(day(10), "rain\xff"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want, _ := d.Read(day(10))
	if want != "rain�" {
		t.Errorf("expected invalid bytes replaced, got %q", want)
	}

	got, ok := openDiary(store).Read(day(10))
	if !ok || got != want {
		t.Errorf("text changed across reload: %q -> %q", want, got)
	}
}
