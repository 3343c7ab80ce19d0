// Package tui is the terminal shell over the widgets. It only presents state
// and forwards user intent; every change goes through the widget managers.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hearth/internal/collection"
	"github.com/julianstephens/hearth/internal/diary"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/packing"
	"github.com/julianstephens/hearth/internal/tui/components/calendar"
	"github.com/julianstephens/hearth/internal/tui/components/checklist"
	"github.com/julianstephens/hearth/internal/tui/components/packlist"
	"github.com/julianstephens/hearth/internal/tui/components/quizview"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateRoutine
	StateTodo
	StateDiary
	StatePacking
	StateQuiz
)

var tabTitles = []string{"Home", "Night routine", "Todo", "Diary", "Packing", "Quiz"}

const defaultResetInterval = time.Minute

type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputRoutine
	inputTodoTitle
	inputTodoDue
	inputDiary
	inputCategory
	inputItem
)

// Options hands the opened widgets to the shell.
type Options struct {
	NightRoutine *collection.Manager
	Todo         *collection.Manager
	Diary        *diary.Diary
	Packing      *packing.List
	Questions    []models.QuizQuestion
	Now          func() time.Time
	// ResetInterval is how often the night routine's scheduled reset is
	// re-checked while the shell is open. Zero means once a minute.
	ResetInterval time.Duration
}

type confirmation struct {
	prompt string
	action func(m *Model)
}

type resetTickMsg time.Time

type Model struct {
	opts         Options
	state        SessionState
	keys         KeyMap
	help         help.Model
	dashboard    list.Model
	routine      checklist.Model
	todo         checklist.Model
	calendar     calendar.Model
	packing      packlist.Model
	quiz         quizview.Model
	input        textinput.Model
	inputFor     inputPurpose
	inputPrompt  string
	inputTarget  string    // category ID for a new packing item
	inputDate    time.Time // day being written in the diary
	pendingTitle string    // todo title waiting for its due date
	confirm      *confirmation
	status       string
	statusWarn   bool
	quitting     bool
	width        int
	height       int
}

// widgetItem is one dashboard row.
type widgetItem struct {
	state SessionState
	title string
	desc  string
}

func (i widgetItem) Title() string       { return i.title }
func (i widgetItem) Description() string { return i.desc }
func (i widgetItem) FilterValue() string { return i.title }

func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ResetInterval <= 0 {
		opts.ResetInterval = defaultResetInterval
	}

	dash := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	dash.Title = "hearth"
	dash.SetShowHelp(false)
	dash.SetFilteringEnabled(false)
	dash.SetShowStatusBar(false)

	ti := textinput.New()
	ti.CharLimit = 200

	m := Model{
		opts:      opts,
		state:     StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		dashboard: dash,
		routine:   checklist.New("Night routine", "Night routine is empty.", opts.NightRoutine.Entries(), 0, 0),
		todo:      checklist.New("Todo", "No todos yet.", opts.Todo.Entries(), 0, 0),
		calendar:  calendar.New(opts.Diary, opts.Now),
		packing:   packlist.New(opts.Packing.Categories(), 0, 0),
		quiz:      quizview.New(opts.Questions),
		input:     ti,
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDashboard:
		keys = append(keys, m.keys.Enter)
	case StateRoutine, StateTodo:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Delete)
	case StateDiary:
		keys = append(keys, m.calendar.Keys()...)
	case StatePacking:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Delete)
	case StateQuiz:
		keys = append(keys, m.quiz.Keys()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Back, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateRoutine, StateTodo, StatePacking:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Delete, m.keys.Reset}
	case StateDiary:
		actions = m.calendar.Keys()
	case StateQuiz:
		actions = m.quiz.Keys()
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tickReset(m.opts.ResetInterval)
}

func tickReset(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return resetTickMsg(t) })
}

// refresh re-reads every widget after a change.
func (m *Model) refresh() {
	m.routine.SetEntries(m.opts.NightRoutine.Entries())
	m.todo.SetEntries(m.opts.Todo.Entries())
	m.packing.SetCategories(m.opts.Packing.Categories())
	m.dashboard.SetItems(m.dashboardItems())
}

func (m Model) dashboardItems() []list.Item {
	now := m.opts.Now()
	routine := m.opts.NightRoutine
	todo := m.opts.Todo

	diaryDesc := "nothing written today"
	if m.opts.Diary.HasEntry(now) {
		diaryDesc = "today is written"
	}
	checked, total := m.opts.Packing.CheckedCount()

	return []list.Item{
		widgetItem{StateRoutine, "Night routine", fmt.Sprintf("%d/%d done", routine.CompletedCount(), routine.Len())},
		widgetItem{StateTodo, "Todo", fmt.Sprintf("%d open, %d due today", todo.Len()-todo.CompletedCount(), len(todo.DueToday(now)))},
		widgetItem{StateDiary, "Diary", fmt.Sprintf("%s, %d days written", diaryDesc, m.opts.Diary.Len())},
		widgetItem{StatePacking, "Packing", fmt.Sprintf("%d/%d packed", checked, total)},
		widgetItem{StateQuiz, "Quiz", fmt.Sprintf("%d questions", len(m.opts.Questions))},
	}
}

func (m *Model) resize() {
	width := m.width - 4
	height := m.height - 8
	if height < 3 {
		height = 3
	}
	m.dashboard.SetSize(width, height)
	m.routine.SetSize(width, height)
	m.todo.SetSize(width, height)
	m.packing.SetSize(width, height)
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusWarn = false
}

// checkSaved surfaces a failed write. The change stays in memory.
func (m *Model) checkSaved(err error) {
	if err != nil {
		m.status = fmt.Sprintf("⚠ Not saved, kept for this session only: %v", err)
		m.statusWarn = true
	}
}

func (m *Model) startInput(purpose inputPurpose, prompt, value string) tea.Cmd {
	m.inputFor = purpose
	m.inputPrompt = prompt
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.inputFor = inputNone
	m.inputPrompt = ""
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) askConfirm(prompt string, action func(m *Model)) {
	m.confirm = &confirmation{prompt: prompt, action: action}
}

// activeList returns the entry manager behind the current checklist tab.
func (m Model) activeList() *collection.Manager {
	if m.state == StateTodo {
		return m.opts.Todo
	}
	return m.opts.NightRoutine
}
