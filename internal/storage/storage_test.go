package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Get("todo-items"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set("todo-items", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, err := s.Get("todo-items"); err != nil || got != "[]" {
		t.Errorf("Get() = %q, %v", got, err)
	}

	s.FailWrites = true
	if err := s.Set("todo-items", "[1]"); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("expected ErrWriteFailed, got %v", err)
	}
	if got, _ := s.Get("todo-items"); got != "[]" {
		t.Errorf("failed write must not change stored value, got %q", got)
	}
	if s.Writes != 1 {
		t.Errorf("expected 1 successful write, got %d", s.Writes)
	}
}

func TestJSONStoreLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearth.json")

	s := NewJSONStore(path)
	if err := s.Load(); err == nil || !strings.Contains(err.Error(), "hearth init") {
		t.Errorf("expected not-initialized error, got %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Set("diary-map", `{"2026-10-14":"calm"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("todo-items", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, err := reopened.Get("diary-map"); err != nil || got != `{"2026-10-14":"calm"}` {
		t.Errorf("Get() = %q, %v", got, err)
	}

	keys, err := reopened.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if strings.Join(keys, ",") != "diary-map,todo-items" {
		t.Errorf("Keys() = %v", keys)
	}

	if err := reopened.Remove("diary-map"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := reopened.Get("diary-map"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Remove, got %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestJSONStoreInitKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearth.json")

	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	again := NewJSONStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if got, _ := again.Get("k"); got != "v" {
		t.Errorf("Init overwrote existing data, got %q", got)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearth.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	err := NewJSONStore(path).Load()
	if err == nil || !strings.Contains(err.Error(), "failed to parse storage") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestJSONStoreFailedWriteKeepsMemory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "hearth.json")

	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := s.Set("diary-map", `{"2026-10-14":"calm"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// With the directory gone every save fails.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	if err := s.Remove("diary-map"); err == nil {
		t.Fatal("expected Remove to fail")
	}
	if got, err := s.Get("diary-map"); err != nil || got != `{"2026-10-14":"calm"}` {
		t.Errorf("failed Remove must keep the value, got %q, %v", got, err)
	}

	if err := s.Set("diary-map", "{}"); err == nil {
		t.Fatal("expected Set to fail")
	}
	if got, _ := s.Get("diary-map"); got != `{"2026-10-14":"calm"}` {
		t.Errorf("failed Set must keep the value, got %q", got)
	}
}
