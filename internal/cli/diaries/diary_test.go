package diaries

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/config"
	"github.com/julianstephens/hearth/internal/storage"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := config.NewDefaultConfig()
	cfg.Timezone = "UTC"
	now := time.Date(2026, 4, 15, 20, 0, 0, 0, time.UTC)
	ctx := &cli.Context{
		Store:  storage.NewMemoryStore(),
		Config: cfg,
		Out:    out,
		Now:    func() time.Time { return now },
	}
	return ctx, out
}

func TestWriteAndRead(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&WriteCmd{Date: "2026-04-10", Text: "Walked by the river"}).Run(ctx); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(out.String(), "Saved entry for 2026-04-10") {
		t.Errorf("unexpected write output: %s", out.String())
	}

	out.Reset()
	if err := (&ReadCmd{Date: "2026-04-10"}).Run(ctx); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(out.String(), "2026-04-10: Walked by the river") {
		t.Errorf("unexpected read output: %s", out.String())
	}
}

func TestWriteOverwrites(t *testing.T) {
	ctx, _ := setupTestContext(t)

	for _, text := range []string{"first", "second"} {
		if err := (&WriteCmd{Date: "today", Text: text}).Run(ctx); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	text, ok := ctx.Diary().Read(ctx.Today())
	if !ok || text != "second" {
		t.Errorf("expected overwritten text, got %q (ok=%v)", text, ok)
	}
}

func TestWriteFutureRejected(t *testing.T) {
	ctx, _ := setupTestContext(t)

	err := (&WriteCmd{Date: "tomorrow", Text: "not yet"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "has not happened yet") {
		t.Fatalf("expected future date error, got %v", err)
	}
	if n := ctx.Diary().Len(); n != 0 {
		t.Errorf("expected empty diary, got %d entries", n)
	}
}

func TestWriteBlankClears(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&WriteCmd{Date: "yesterday", Text: "rain"}).Run(ctx); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out.Reset()
	if err := (&WriteCmd{Date: "yesterday", Text: "   "}).Run(ctx); err != nil {
		t.Fatalf("blank write failed: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2026-04-14") {
		t.Errorf("unexpected output: %s", out.String())
	}
	if ctx.Diary().HasEntry(ctx.Today().AddDate(0, 0, -1)) {
		t.Error("expected yesterday to be cleared")
	}
}

func TestReadMissing(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ReadCmd{}).Run(ctx); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(out.String(), "No entry for 2026-04-15") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestClear(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ClearCmd{Date: "2026-04-01"}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out.String(), "No entry for 2026-04-01") {
		t.Errorf("unexpected output for missing entry: %s", out.String())
	}

	if err := (&WriteCmd{Date: "2026-04-01", Text: "spring"}).Run(ctx); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out.Reset()
	if err := (&ClearCmd{Date: "2026-04-01"}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2026-04-01") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestMonthCalendar(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&WriteCmd{Date: "2026-04-03", Text: "one"}).Run(ctx); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out.Reset()
	if err := (&MonthCmd{}).Run(ctx); err != nil {
		t.Fatalf("month failed: %v", err)
	}

	got := out.String()
	lines := strings.Split(got, "\n")
	if lines[0] != "April 2026 (1 written)" {
		t.Errorf("unexpected header %q", lines[0])
	}
	// April 2026 starts on a Wednesday
	if lines[2] != "              1   2   3*  4" {
		t.Errorf("unexpected first week %q", lines[2])
	}
	if !strings.Contains(got, "[15 ") {
		t.Errorf("expected today to be marked, got:\n%s", got)
	}
}

func TestMonthOtherMonth(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&MonthCmd{Month: "2026-02"}).Run(ctx); err != nil {
		t.Fatalf("month failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "February 2026 (0 written)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	if err := (&MonthCmd{Month: "February"}).Run(ctx); err == nil {
		t.Error("expected error for malformed month")
	}
}
