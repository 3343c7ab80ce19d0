package sqlite

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/hearth/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestGetMissingKey(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get("night-routine-tasks")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetGetOverwriteRemove(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Set("diary-map", `{"2026-10-14":"first"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("diary-map", `{"2026-10-14":"second"}`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := store.Get("diary-map")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `{"2026-10-14":"second"}` {
		t.Errorf("Get() = %q", got)
	}

	if err := store.Remove("diary-map"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := store.Get("diary-map"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after Remove, got %v", err)
	}

	// Removing an absent key is not an error
	if err := store.Remove("diary-map"); err != nil {
		t.Errorf("Remove of missing key failed: %v", err)
	}
}

func TestKeys(t *testing.T) {
	store := setupTestStore(t)

	for _, k := range []string{"todo-items", "diary-map", "night-routine-tasks"} {
		if err := store.Set(k, "[]"); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	want := "diary-map,night-routine-tasks,todo-items"
	if strings.Join(keys, ",") != want {
		t.Errorf("Keys() = %v, want %s", keys, want)
	}
}

func TestLoadReopensInitializedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Set("todo-items", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()

	got, err := second.Get("todo-items")
	if err != nil || got != "[]" {
		t.Errorf("Get() = %q, %v", got, err)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "hearth init") {
		t.Errorf("expected not-initialized error, got %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if got, _ := store.Get("k"); got != "v" {
		t.Errorf("Init wiped existing data, got %q", got)
	}
}

func TestSchemaVersionAfterInit(t *testing.T) {
	store := setupTestStore(t)

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest {
		t.Errorf("expected schema at latest version %d, got %d", latest, current)
	}
	if latest < 1 {
		t.Errorf("expected at least one migration, got %d", latest)
	}
}
