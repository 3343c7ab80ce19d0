package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/hearth/internal/backup"
	"github.com/julianstephens/hearth/internal/collection"
	"github.com/julianstephens/hearth/internal/config"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/diary"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/packing"
	"github.com/julianstephens/hearth/internal/storage"
	"github.com/julianstephens/hearth/internal/utils"
	"github.com/julianstephens/hearth/internal/widgets"
)

// Context is handed to every command's Run method.
type Context struct {
	Store  storage.Provider
	Config *config.Config
	// ConfigPath is the config file location; init writes defaults there.
	ConfigPath string
	Out        io.Writer
	In         io.Reader
	// Now overrides the clock; nil means the configured timezone's wall clock.
	Now func() time.Time
}

// NewContext returns a Context writing to stdout.
func NewContext(store storage.Provider, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Context{Store: store, Config: cfg, Out: os.Stdout, In: os.Stdin}
}

// Clock returns the time source used by the widgets.
func (c *Context) Clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return c.Config.Now
}

// Today returns the current time in the configured timezone.
func (c *Context) Today() time.Time {
	return c.Clock()()
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// NightRoutine opens the night-routine checklist.
func (c *Context) NightRoutine() *collection.Manager {
	return widgets.NewNightRoutine(c.Store, widgets.NightRoutineOptions{
		ResetHour: c.Config.NightRoutine.ResetHour,
		Now:       c.Clock(),
	})
}

// Todo opens the todo list.
func (c *Context) Todo() *collection.Manager {
	return widgets.NewTodo(c.Store, widgets.TodoOptions{
		Retention: c.Config.Todo.Retention(),
		Now:       c.Clock(),
	})
}

// Diary opens the diary.
func (c *Context) Diary() *diary.Diary {
	return diary.Open(c.Store, diary.Options{Now: c.Clock()})
}

// Packing opens the packing list.
func (c *Context) Packing() *packing.List {
	return packing.Open(c.Store, packing.Options{})
}

// WarnIfUnsaved tells the user when the last write did not reach the store.
func (c *Context) WarnIfUnsaved(err error) {
	if err != nil {
		c.Printf("Warning: change kept for this session only, failed to save: %v\n", err)
	}
}

// PerformAutomaticBackup creates a backup for file-backed stores and logs failures.
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		return
	}
	mgr := backup.NewManager(path)
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveEntry maps a list position (1-based) or an id to an entry id.
func ResolveEntry(entries []models.Entry, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, e := range entries {
		if e.ID == ref {
			return e.ID, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(entries) {
			return "", fmt.Errorf("no entry at position %d (have %d)", n, len(entries))
		}
		return entries[n-1].ID, nil
	}
	return "", fmt.Errorf("no entry with id %q", ref)
}

// ParseDay accepts "today", "yesterday", "tomorrow" or YYYY-MM-DD and returns
// midnight of that day in now's location.
func ParseDay(ref string, now time.Time) (time.Time, error) {
	today := utils.StartOfDay(now)
	switch strings.ToLower(strings.TrimSpace(ref)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	return utils.ParseDateKey(ref, now.Location())
}

// ParseMonth accepts YYYY-MM, or "" for now's month.
func ParseMonth(ref string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(ref) == "" {
		return utils.FirstOfMonth(now), nil
	}
	t, err := time.ParseInLocation("2006-01", ref, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", ref)
	}
	return t, nil
}

// FormatEntry renders one checklist line.
func FormatEntry(i int, e models.Entry, showIDs bool) string {
	mark := " "
	if e.Done() {
		mark = "x"
	}
	line := fmt.Sprintf("%2d. [%s] %s", i+1, mark, e.Title)
	if e.DueDate != "" {
		line += fmt.Sprintf(" (due %s)", e.DueDate)
	}
	if e.Done() {
		line += fmt.Sprintf(" - done %s", e.CompletedAt.Local().Format(constants.DateTimeFormat))
	}
	if showIDs {
		line += fmt.Sprintf(" (ID: %s)", e.ID)
	}
	return line
}
