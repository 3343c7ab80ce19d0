package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hearth/internal/diary"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/tui/components/calendar"
	"github.com/julianstephens/hearth/internal/tui/components/checklist"
	"github.com/julianstephens/hearth/internal/tui/components/packlist"
	"github.com/julianstephens/hearth/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case resetTickMsg:
		if m.opts.NightRoutine.CheckScheduledReset() {
			logger.Info("Night routine reset while the shell was open")
			m.refresh()
			m.setStatus("Night routine reset for tonight")
			m.checkSaved(m.opts.NightRoutine.Err())
		}
		return m, tickReset(m.opts.ResetInterval)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case checklist.AddMsg:
		if m.state == StateTodo {
			return m, m.startInput(inputTodoTitle, "New todo: ", "")
		}
		return m, m.startInput(inputRoutine, "New routine task: ", "")

	case checklist.ToggleMsg:
		mgr := m.activeList()
		if mgr.Toggle(msg.ID) {
			m.refresh()
			m.checkSaved(mgr.Err())
		}
		return m, nil

	case checklist.DeleteMsg:
		mgr := m.activeList()
		id := msg.ID
		m.askConfirm("Delete \""+msg.Title+"\"?", func(m *Model) {
			if mgr.Delete(id) {
				m.setStatus("Deleted %q", msg.Title)
				m.checkSaved(mgr.Err())
			}
		})
		return m, nil

	case checklist.ResetMsg:
		mgr := m.activeList()
		m.askConfirm("Uncheck every entry?", func(m *Model) {
			n := mgr.ResetAll()
			m.setStatus("Unchecked %d entries", n)
			if n > 0 {
				m.checkSaved(mgr.Err())
			}
		})
		return m, nil

	case calendar.EditMsg:
		m.inputDate = msg.Date
		return m, m.startInput(inputDiary, utils.DateKey(msg.Date)+": ", msg.Text)

	case calendar.ClearMsg:
		date := msg.Date
		m.askConfirm("Clear the entry for "+utils.DateKey(date)+"?", func(m *Model) {
			if m.opts.Diary.Clear(date) {
				m.setStatus("Cleared %s", utils.DateKey(date))
				m.checkSaved(m.opts.Diary.Err())
			}
		})
		return m, nil

	case packlist.AddCategoryMsg:
		return m, m.startInput(inputCategory, "New category: ", "")

	case packlist.AddItemMsg:
		m.inputTarget = msg.CategoryID
		return m, m.startInput(inputItem, "New item in "+msg.CategoryName+": ", "")

	case packlist.ToggleItemMsg:
		if m.opts.Packing.ToggleItem(msg.CategoryID, msg.ItemID) {
			m.refresh()
			m.checkSaved(m.opts.Packing.Err())
		}
		return m, nil

	case packlist.DeleteItemMsg:
		categoryID, itemID := msg.CategoryID, msg.ItemID
		m.askConfirm("Delete \""+msg.Name+"\"?", func(m *Model) {
			if m.opts.Packing.DeleteItem(categoryID, itemID) {
				m.setStatus("Deleted %q", msg.Name)
				m.checkSaved(m.opts.Packing.Err())
			}
		})
		return m, nil

	case packlist.DeleteCategoryMsg:
		categoryID := msg.CategoryID
		prompt := "Delete category \"" + msg.Name + "\"?"
		if msg.Items > 0 {
			prompt = "Delete category \"" + msg.Name + "\" and its items?"
		}
		m.askConfirm(prompt, func(m *Model) {
			if m.opts.Packing.DeleteCategory(categoryID) {
				m.setStatus("Deleted category %q", msg.Name)
				m.checkSaved(m.opts.Packing.Err())
			}
		})
		return m, nil

	case packlist.ResetMsg:
		m.askConfirm("Unpack every item?", func(m *Model) {
			n := m.opts.Packing.ResetAll()
			m.setStatus("Unpacked %d items", n)
			if n > 0 {
				m.checkSaved(m.opts.Packing.Err())
			}
		})
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			c := m.confirm
			m.confirm = nil
			c.action(&m)
			m.refresh()
		case key.Matches(msg, m.keys.Cancel):
			m.confirm = nil
			m.setStatus("Cancelled")
		}
		return m, nil
	}

	if m.inputFor != inputNone {
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitInput()
		case tea.KeyEsc:
			m.stopInput()
			m.pendingTitle = ""
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.filtering() {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.switchTo(SessionState((int(m.state) + 1) % len(tabTitles)))
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.switchTo(SessionState((int(m.state) + len(tabTitles) - 1) % len(tabTitles)))
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.state != StateDashboard {
			m.switchTo(StateDashboard)
			return m, nil
		}
	case m.state == StateDashboard && key.Matches(msg, m.keys.Enter):
		if item, ok := m.dashboard.SelectedItem().(widgetItem); ok {
			m.switchTo(item.state)
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m *Model) switchTo(state SessionState) {
	m.state = state
	m.status = ""
	m.statusWarn = false
	m.refresh()
}

func (m Model) filtering() bool {
	switch m.state {
	case StateRoutine:
		return m.routine.Filtering()
	case StateTodo:
		return m.todo.Filtering()
	case StatePacking:
		return m.packing.Filtering()
	}
	return false
}

// updateActive hands msg to the component of the current tab.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case StateRoutine:
		m.routine, cmd = m.routine.Update(msg)
	case StateTodo:
		m.todo, cmd = m.todo.Update(msg)
	case StateDiary:
		m.calendar, cmd = m.calendar.Update(msg)
	case StatePacking:
		m.packing, cmd = m.packing.Update(msg)
	case StateQuiz:
		m.quiz, cmd = m.quiz.Update(msg)
	}
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	purpose := m.inputFor
	m.stopInput()

	switch purpose {
	case inputRoutine:
		if e, ok := m.opts.NightRoutine.Add(value, ""); ok {
			m.setStatus("Added %q", e.Title)
			m.checkSaved(m.opts.NightRoutine.Err())
		}

	case inputTodoTitle:
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.pendingTitle = value
		return m, m.startInput(inputTodoDue, "Due (YYYY-MM-DD, today, tomorrow, blank for none): ", "")

	case inputTodoDue:
		title := m.pendingTitle
		m.pendingTitle = ""
		due, err := m.parseDue(value)
		if err != nil {
			m.status = err.Error()
			m.statusWarn = true
			return m, nil
		}
		if e, ok := m.opts.Todo.Add(title, due); ok {
			m.setStatus("Added %q", e.Title)
			m.checkSaved(m.opts.Todo.Err())
		}

	case inputDiary:
		err := m.opts.Diary.Write(m.inputDate, value)
		switch {
		case errors.Is(err, diary.ErrFutureDate):
			m.status = utils.DateKey(m.inputDate) + " has not happened yet"
			m.statusWarn = true
			return m, nil
		case strings.TrimSpace(value) == "":
			m.setStatus("Cleared %s", utils.DateKey(m.inputDate))
		default:
			m.setStatus("Saved %s", utils.DateKey(m.inputDate))
		}
		m.checkSaved(m.opts.Diary.Err())

	case inputCategory:
		if c, ok := m.opts.Packing.AddCategory(value); ok {
			m.setStatus("Added category %q", c.Name)
			m.checkSaved(m.opts.Packing.Err())
		}

	case inputItem:
		if item, ok := m.opts.Packing.AddItem(m.inputTarget, value); ok {
			m.setStatus("Added %q", item.Name)
			m.checkSaved(m.opts.Packing.Err())
		}
		m.inputTarget = ""
	}

	m.refresh()
	return m, nil
}

// parseDue turns the due prompt answer into a date key.
func (m Model) parseDue(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	now := m.opts.Now()
	switch value {
	case "":
		return "", nil
	case "today":
		return utils.DateKey(now), nil
	case "tomorrow":
		return utils.DateKey(now.AddDate(0, 0, 1)), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", value, now.Location()); err != nil {
		return "", errors.New("due date must be YYYY-MM-DD, today or tomorrow")
	}
	return value, nil
}
