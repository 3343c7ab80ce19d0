package packlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hearth/internal/models"
)

type AddCategoryMsg struct{}

type AddItemMsg struct {
	CategoryID   string
	CategoryName string
}

type ToggleItemMsg struct {
	CategoryID string
	ItemID     string
}

type DeleteItemMsg struct {
	CategoryID string
	ItemID     string
	Name       string
}

type DeleteCategoryMsg struct {
	CategoryID string
	Name       string
	Items      int
}

type ResetMsg struct{}

// Row is one line of the flattened list: a category header, or an item when
// Item is set.
type Row struct {
	Category models.PackingCategory
	Item     *models.PackingItem
}

func (r Row) Title() string {
	if r.Item == nil {
		return "▸ " + r.Category.Name
	}
	if r.Item.Checked {
		return "    [x] " + r.Item.Name
	}
	return "    [ ] " + r.Item.Name
}

func (r Row) Description() string {
	if r.Item != nil {
		return ""
	}
	packed := 0
	for _, item := range r.Category.Items {
		if item.Checked {
			packed++
		}
	}
	return fmt.Sprintf("%d/%d packed", packed, len(r.Category.Items))
}

func (r Row) FilterValue() string {
	if r.Item == nil {
		return r.Category.Name
	}
	return r.Item.Name
}

type KeyMap struct {
	Toggle      key.Binding
	AddItem     key.Binding
	AddCategory key.Binding
	Delete      key.Binding
	Reset       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x", "enter"),
			key.WithHelp("space", "pack"),
		),
		AddItem: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add item"),
		),
		AddCategory: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add category"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "unpack all"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(categories []models.PackingCategory, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(toRows(categories), delegate, width, height)
	l.Title = "Packing"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.AddItem, keys.AddCategory, keys.Delete, keys.Reset}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func toRows(categories []models.PackingCategory) []list.Item {
	var rows []list.Item
	for _, c := range categories {
		rows = append(rows, Row{Category: c})
		for i := range c.Items {
			item := c.Items[i]
			rows = append(rows, Row{Category: c, Item: &item})
		}
	}
	return rows
}

// SetCategories replaces the rows and keeps the cursor in range.
func (m *Model) SetCategories(categories []models.PackingCategory) {
	idx := m.list.Index()
	rows := toRows(categories)
	m.list.SetItems(rows)
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		row, selected := m.list.SelectedItem().(Row)
		switch {
		case key.Matches(keyMsg, m.keys.AddCategory):
			return m, func() tea.Msg { return AddCategoryMsg{} }
		case key.Matches(keyMsg, m.keys.Reset):
			return m, func() tea.Msg { return ResetMsg{} }
		case key.Matches(keyMsg, m.keys.AddItem):
			if selected {
				return m, func() tea.Msg {
					return AddItemMsg{CategoryID: row.Category.ID, CategoryName: row.Category.Name}
				}
			}
			return m, nil
		case key.Matches(keyMsg, m.keys.Toggle):
			if selected && row.Item != nil {
				return m, func() tea.Msg { return ToggleItemMsg{CategoryID: row.Category.ID, ItemID: row.Item.ID} }
			}
			return m, nil
		case key.Matches(keyMsg, m.keys.Delete):
			if !selected {
				return m, nil
			}
			if row.Item != nil {
				return m, func() tea.Msg {
					return DeleteItemMsg{CategoryID: row.Category.ID, ItemID: row.Item.ID, Name: row.Item.Name}
				}
			}
			return m, func() tea.Msg {
				return DeleteCategoryMsg{CategoryID: row.Category.ID, Name: row.Category.Name, Items: len(row.Category.Items)}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  Packing list is empty.\n  Press 'A' to add a category."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
