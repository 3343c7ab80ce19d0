package checklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/models"
)

type AddMsg struct{}

type ToggleMsg struct {
	ID string
}

type DeleteMsg struct {
	ID    string
	Title string
}

type ResetMsg struct{}

type Item struct {
	Entry models.Entry
}

func (i Item) Title() string {
	if i.Entry.Done() {
		return "[x] " + i.Entry.Title
	}
	return "[ ] " + i.Entry.Title
}

func (i Item) Description() string {
	desc := "open"
	if i.Entry.Done() {
		desc = "done " + i.Entry.CompletedAt.Local().Format(constants.DateTimeFormat)
	}
	if i.Entry.DueDate != "" {
		desc = fmt.Sprintf("due %s | %s", i.Entry.DueDate, desc)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Title }

type KeyMap struct {
	Toggle key.Binding
	Add    key.Binding
	Delete key.Binding
	Reset  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x", "enter"),
			key.WithHelp("space", "check"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "uncheck all"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	empty string
}

// New builds a checklist titled title. empty is shown when there are no entries.
func New(title, empty string, entries []models.Entry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Delete, keys.Reset}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Delete, keys.Reset}
	}

	return Model{list: l, keys: keys, empty: empty}
}

func toItems(entries []models.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

// SetEntries replaces the rows and keeps the cursor in range.
func (m *Model) SetEntries(entries []models.Entry) {
	idx := m.list.Index()
	m.list.SetItems(toItems(entries))
	if idx >= len(entries) {
		idx = len(entries) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// Filtering reports whether the user is typing a filter, in which case keys
// belong to the list.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleMsg{ID: i.Entry.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteMsg{ID: i.Entry.ID, Title: i.Entry.Title} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			return m, func() tea.Msg { return ResetMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  " + m.empty + "\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
