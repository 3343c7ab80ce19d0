package todos

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/config"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/storage"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := config.NewDefaultConfig()
	cfg.Timezone = "UTC"
	now := time.Date(2026, 4, 15, 9, 30, 0, 0, time.UTC)
	ctx := &cli.Context{
		Store:  storage.NewMemoryStore(),
		Config: cfg,
		Out:    out,
		Now:    func() time.Time { return now },
	}
	return ctx, out
}

func addTodo(t *testing.T, ctx *cli.Context, title, due string) {
	t.Helper()
	if err := (&AddCmd{Title: title, Due: due}).Run(ctx); err != nil {
		t.Fatalf("add %q failed: %v", title, err)
	}
}

func TestListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No todos found") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestAddPrependsAndParsesDueDate(t *testing.T) {
	ctx, _ := setupTestContext(t)

	addTodo(t, ctx, "Buy milk", "")
	addTodo(t, ctx, "Pay rent", "tomorrow")
	addTodo(t, ctx, "Call mom", "2026-04-20")

	entries := ctx.Todo().Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []struct{ title, due string }{
		{"Call mom", "2026-04-20"},
		{"Pay rent", "2026-04-16"},
		{"Buy milk", ""},
	}
	for i, w := range want {
		if entries[i].Title != w.title || entries[i].DueDate != w.due {
			t.Errorf("entry %d: expected %s due %q, got %s due %q", i, w.title, w.due, entries[i].Title, entries[i].DueDate)
		}
	}
}

func TestAddRejectsBadDueDate(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&AddCmd{Title: "Buy milk", Due: "next week"}).Run(ctx); err == nil {
		t.Fatal("expected error for unparseable due date")
	}
	if n := ctx.Todo().Len(); n != 0 {
		t.Errorf("expected no entries, got %d", n)
	}
}

func TestDoneAndListOpen(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTodo(t, ctx, "Buy milk", "")
	addTodo(t, ctx, "Pay rent", "")

	out.Reset()
	if err := (&DoneCmd{Ref: "2"}).Run(ctx); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	if !strings.Contains(out.String(), "Completed Buy milk") {
		t.Errorf("unexpected done output: %s", out.String())
	}

	out.Reset()
	if err := (&ListCmd{Open: true}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "(1/2 done)") || !strings.Contains(got, "Pay rent") || strings.Contains(got, "Buy milk") {
		t.Errorf("unexpected open list:\n%s", got)
	}
}

func TestDoneTwiceReopens(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTodo(t, ctx, "Buy milk", "")

	for i := 0; i < 2; i++ {
		if err := (&DoneCmd{Ref: "1"}).Run(ctx); err != nil {
			t.Fatalf("done failed: %v", err)
		}
	}
	if !strings.Contains(out.String(), "Reopened Buy milk") {
		t.Errorf("expected reopen, got: %s", out.String())
	}
}

func TestDelete(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addTodo(t, ctx, "Buy milk", "")
	addTodo(t, ctx, "Pay rent", "")
	addTodo(t, ctx, "Call mom", "")

	if err := (&DeleteCmd{Refs: []string{"1", "3"}}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	entries := ctx.Todo().Entries()
	if len(entries) != 1 || entries[0].Title != "Pay rent" {
		t.Errorf("unexpected remaining entries: %+v", entries)
	}
}

func TestDueListsIncompleteToday(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTodo(t, ctx, "Buy milk", "today")
	addTodo(t, ctx, "Pay rent", "today")
	addTodo(t, ctx, "Call mom", "tomorrow")
	if err := (&DoneCmd{Ref: "2"}).Run(ctx); err != nil {
		t.Fatalf("done failed: %v", err)
	}

	out.Reset()
	if err := (&DueCmd{}).Run(ctx); err != nil {
		t.Fatalf("due failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Due today (1)") || !strings.Contains(got, "Buy milk") {
		t.Errorf("unexpected due output:\n%s", got)
	}
}

func TestNotifyDryRun(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTodo(t, ctx, "Buy milk", "today")

	out.Reset()
	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if !strings.Contains(out.String(), "[DryRun] 1 task due today: Buy milk") {
		t.Errorf("unexpected notify output: %s", out.String())
	}

	if _, err := ctx.Store.Get(constants.KeyTodoNotified); err == nil {
		t.Error("dry run should not record the notification date")
	}
}

func TestNotifyDryRunRespectsStoredFlag(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTodo(t, ctx, "Buy milk", "today")
	if err := ctx.Store.Set(constants.KeyTodoNotified, "2026-04-15"); err != nil {
		t.Fatalf("failed to seed flag: %v", err)
	}

	out.Reset()
	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if !strings.Contains(out.String(), "No notification: already notified today") {
		t.Errorf("unexpected notify output: %s", out.String())
	}
}

func TestNotifyDisabled(t *testing.T) {
	ctx, out := setupTestContext(t)
	ctx.Config.Notifications.Enabled = false
	addTodo(t, ctx, "Buy milk", "today")

	out.Reset()
	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if !strings.Contains(out.String(), "Notifications are disabled") {
		t.Errorf("unexpected notify output: %s", out.String())
	}
}
