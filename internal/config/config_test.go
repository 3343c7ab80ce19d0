package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.NightRoutine.ResetHour != 18 {
		t.Errorf("expected reset hour 18, got %d", cfg.NightRoutine.ResetHour)
	}
	if cfg.Todo.Retention() != 7*24*time.Hour {
		t.Errorf("expected 7 day retention, got %v", cfg.Todo.Retention())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "overrides",
			yaml: "timezone: UTC\nnight_routine:\n  reset_hour: 21\ntodo:\n  retention_days: 3\nnotifications:\n  enabled: false\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.NightRoutine.ResetHour != 21 || cfg.Todo.RetentionDays != 3 || cfg.Notifications.Enabled {
					t.Errorf("overrides not applied: %+v", cfg)
				}
				if cfg.Location() != time.UTC {
					t.Errorf("expected UTC location, got %v", cfg.Location())
				}
			},
		},
		{
			name: "partial keeps defaults",
			yaml: "quiz:\n  bank: /tmp/bank.yaml\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.NightRoutine.ResetHour != 18 || cfg.Quiz.Bank != "/tmp/bank.yaml" {
					t.Errorf("unexpected config %+v", cfg)
				}
			},
		},
		{name: "midnight reset", yaml: "night_routine:\n  reset_hour: 0\n"},
		{name: "reset hour too large", yaml: "night_routine:\n  reset_hour: 24\n", wantErr: "night_routine"},
		{name: "negative reset hour", yaml: "night_routine:\n  reset_hour: -1\n", wantErr: "night_routine"},
		{name: "zero retention", yaml: "todo:\n  retention_days: 0\n", wantErr: "todo"},
		{name: "bad timezone", yaml: "timezone: Mars/Olympus\n", wantErr: "unknown timezone"},
		{name: "bad yaml", yaml: "timezone: [\n", wantErr: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("HEARTH_TEST_BANK", "/srv/quiz.yaml")
	cfg, err := Parse([]byte("quiz:\n  bank: ${HEARTH_TEST_BANK}\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Quiz.Bank != "/srv/quiz.yaml" {
		t.Errorf("expected expanded bank path, got %q", cfg.Quiz.Bank)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if cfg.Todo.RetentionDays != 7 {
		t.Errorf("expected default retention, got %d", cfg.Todo.RetentionDays)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := NewDefaultConfig()
	cfg.Timezone = "UTC"
	cfg.NightRoutine.ResetHour = 20

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Timezone != "UTC" || loaded.NightRoutine.ResetHour != 20 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("todo:\n  retention_days: -2\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}
