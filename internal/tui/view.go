package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.confirm != nil {
		b.WriteString(docStyle.Render(dangerStyle.Render(m.confirm.prompt) + "\n\n" + statusStyle.Render("y to confirm, n to cancel")))
		return b.String()
	}

	b.WriteString(docStyle.Render(m.activeView()))
	b.WriteString("\n")

	if m.inputFor != inputNone {
		b.WriteString(promptStyle.Render(m.inputPrompt))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusWarn {
			b.WriteString(warningStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if SessionState(i) == m.state {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = inactiveTabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) activeView() string {
	switch m.state {
	case StateRoutine:
		return m.routine.View()
	case StateTodo:
		return m.todo.View()
	case StateDiary:
		return m.calendar.View()
	case StatePacking:
		return m.packing.View()
	case StateQuiz:
		return m.quiz.View()
	}
	return m.dashboard.View()
}
