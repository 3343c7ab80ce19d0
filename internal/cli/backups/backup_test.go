package backups

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/hearth/internal/backup"
	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/config"
	"github.com/julianstephens/hearth/internal/storage/sqlite"
)

func setupTestBackupDB(t *testing.T, input string) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "hearth.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:  store,
		Config: config.NewDefaultConfig(),
		Out:    out,
		In:     strings.NewReader(input),
	}
	return ctx, out, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out, dbPath := setupTestBackupDB(t, "")

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected empty list output: %s", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: hearth-") {
		t.Errorf("unexpected create output: %s", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := filepath.Join(filepath.Dir(dbPath), "backups")
	if !strings.Contains(out.String(), "Available backups (1 total") || !strings.Contains(out.String(), want) {
		t.Errorf("unexpected list output: %s", out.String())
	}
}

func TestBackupRestoreConfirmed(t *testing.T) {
	ctx, out, dbPath := setupTestBackupDB(t, "y\n")

	if err := ctx.Store.Set("todo-items", "[]"); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	backupPath, err := backup.NewManager(dbPath).Create()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if err := ctx.Store.Set("todo-items", "changed"); err != nil {
		t.Fatalf("failed to change store: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Data restored successfully!") {
		t.Errorf("unexpected restore output: %s", out.String())
	}

	restored := sqlite.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer restored.Close()
	got, err := restored.Get("todo-items")
	if err != nil {
		t.Fatalf("failed to read restored value: %v", err)
	}
	if got != "[]" {
		t.Errorf("expected restored value [], got %q", got)
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out, dbPath := setupTestBackupDB(t, "n\n")

	backupPath, err := backup.NewManager(dbPath).Create()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("expected cancellation, got: %s", out.String())
	}

	backups, err := backup.NewManager(dbPath).List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("cancelled restore should not create backups, got %d", len(backups))
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, _ := setupTestBackupDB(t, "y\n")

	err := (&BackupRestoreCmd{BackupFile: "hearth-20000101-000000.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestBackupRestoreSkipsPromptWithYes(t *testing.T) {
	ctx, out, dbPath := setupTestBackupDB(t, "")

	backupPath, err := backup.NewManager(dbPath).Create()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if err := (&BackupRestoreCmd{BackupFile: backupPath, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if strings.Contains(out.String(), "Continue?") {
		t.Errorf("expected no prompt, got: %s", out.String())
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("store missing after restore: %v", err)
	}
}
