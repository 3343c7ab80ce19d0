package quizview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/quiz"
)

var (
	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	correctStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	wrongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Restart key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev option"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next option"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "answer"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
	}
}

// Model drives a quiz session. The session is never persisted.
type Model struct {
	session  *quiz.Session
	cursor   int
	last     *models.QuizQuestion
	lastPick int
	correct  bool
	keys     KeyMap
}

func New(questions []models.QuizQuestion) Model {
	return Model{session: quiz.NewSession(questions), keys: DefaultKeyMap()}
}

func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Confirm, m.keys.Restart}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Restart) {
		m.session.Reset()
		m.cursor = 0
		m.last = nil
		return m, nil
	}

	q, live := m.session.Current()
	if !live {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Confirm):
		if !m.session.Select(m.cursor) {
			return m, nil
		}
		m.correct, _ = m.session.Confirm()
		m.last = &q
		m.lastPick = m.cursor
		m.cursor = 0
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	if m.last != nil {
		if m.correct {
			b.WriteString(correctStyle.Render(fmt.Sprintf("✓ Correct, it is %s.", m.last.Options[m.lastPick])))
		} else {
			b.WriteString(wrongStyle.Render(fmt.Sprintf("✗ %s. The answer was %s.", m.last.Options[m.lastPick], m.last.Options[m.last.AnswerIndex])))
		}
		b.WriteString("\n\n")
	}

	q, live := m.session.Current()
	if !live {
		b.WriteString(questionStyle.Render(fmt.Sprintf("Quiz complete: %d/%d correct", m.session.Score(), m.session.Total())))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Press 'r' to start over."))
		return b.String()
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("Question %d of %d · score %d", m.session.Index()+1, m.session.Total(), m.session.Score())))
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render(q.Question))
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}
	if m.session.IsLast() {
		b.WriteString("\n" + mutedStyle.Render("Last question"))
	}
	return b.String()
}
