package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hearth/internal/diary"
	"github.com/julianstephens/hearth/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	dayStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Right)

	writtenStyle = dayStyle.
			Foreground(lipgloss.Color("42")).
			Bold(true)

	futureStyle = dayStyle.
			Foreground(lipgloss.Color("238"))

	todayStyle = dayStyle.
			Underline(true)

	selectedStyle = dayStyle.
			Reverse(true)

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Italic(true)
)

type EditMsg struct {
	Date time.Time
	Text string
}

type ClearMsg struct {
	Date time.Time
}

type KeyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Edit      key.Binding
	Clear     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("[", "p"),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]", "n"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "write"),
		),
		Clear: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "clear day"),
		),
	}
}

// Model is a month calendar over a diary with a day cursor.
type Model struct {
	diary    *diary.Diary
	now      func() time.Time
	selected time.Time
	keys     KeyMap
}

func New(d *diary.Diary, now func() time.Time) Model {
	return Model{
		diary:    d,
		now:      now,
		selected: utils.StartOfDay(now()),
		keys:     DefaultKeyMap(),
	}
}

// Selected returns midnight of the day under the cursor.
func (m Model) Selected() time.Time {
	return m.selected
}

func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today, m.keys.Edit, m.keys.Clear}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.selected = m.selected.AddDate(0, 0, -1)
	case key.Matches(keyMsg, m.keys.NextDay):
		m.selected = m.selected.AddDate(0, 0, 1)
	case key.Matches(keyMsg, m.keys.PrevWeek):
		m.selected = m.selected.AddDate(0, 0, -7)
	case key.Matches(keyMsg, m.keys.NextWeek):
		m.selected = m.selected.AddDate(0, 0, 7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.selected = utils.AddMonths(m.selected, -1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.selected = utils.AddMonths(m.selected, 1)
	case key.Matches(keyMsg, m.keys.Today):
		m.selected = utils.StartOfDay(m.now())
	case key.Matches(keyMsg, m.keys.Edit):
		date := m.selected
		text, _ := m.diary.Read(date)
		return m, func() tea.Msg { return EditMsg{Date: date, Text: text} }
	case key.Matches(keyMsg, m.keys.Clear):
		date := m.selected
		if m.diary.HasEntry(date) {
			return m, func() tea.Msg { return ClearMsg{Date: date} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	month := m.diary.Month(m.selected, m.now())

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %d", month.Month, month.Year)))
	b.WriteString(fmt.Sprintf("  %d written\n\n", month.Written()))

	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(weekdayStyle.Render(fmt.Sprintf("%4s", wd)))
	}
	b.WriteString("\n")

	for _, week := range month.Weeks() {
		for _, cell := range week {
			b.WriteString(m.renderCell(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	day := utils.DateKey(m.selected)
	if text, ok := m.diary.Read(m.selected); ok {
		b.WriteString(day + "  " + entryStyle.Render(text))
	} else if utils.IsFuture(m.selected, m.now()) {
		b.WriteString(day + "  " + weekdayStyle.Render("(not yet)"))
	} else {
		b.WriteString(day + "  " + weekdayStyle.Render("(no entry, press enter to write)"))
	}
	return b.String()
}

func (m Model) renderCell(cell diary.Cell) string {
	if cell.Blank {
		return dayStyle.Render("")
	}
	text := fmt.Sprintf("%d", cell.Day)
	switch {
	case utils.IsSameDay(cell.Date, m.selected):
		return selectedStyle.Render(text)
	case cell.HasEntry:
		return writtenStyle.Render(text)
	case cell.IsFuture:
		return futureStyle.Render(text)
	case cell.IsToday:
		return todayStyle.Render(text)
	default:
		return dayStyle.Render(text)
	}
}
