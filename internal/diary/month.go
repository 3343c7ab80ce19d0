package diary

import (
	"time"

	"github.com/julianstephens/hearth/internal/utils"
)

// Cell is one slot of a Sunday-first month calendar. Blank cells pad the
// first week and carry no date.
type Cell struct {
	Blank    bool
	Date     time.Time
	Day      int
	HasEntry bool
	IsToday  bool
	IsFuture bool
}

// Month is the calendar view of one month.
type Month struct {
	Year  int
	Month time.Month
	Cells []Cell
}

// Month builds the calendar for anchor's month, flagging today, future days
// and days with an entry.
func (d *Diary) Month(anchor, today time.Time) Month {
	first := utils.FirstOfMonth(anchor)
	grid := utils.BuildMonthGrid(first)

	m := Month{Year: first.Year(), Month: first.Month(), Cells: make([]Cell, 0, len(grid))}
	for _, day := range grid {
		if day == nil {
			m.Cells = append(m.Cells, Cell{Blank: true})
			continue
		}
		m.Cells = append(m.Cells, Cell{
			Date:     *day,
			Day:      day.Day(),
			HasEntry: d.HasEntry(*day),
			IsToday:  utils.IsSameDay(*day, today),
			IsFuture: utils.IsFuture(*day, today),
		})
	}
	return m
}

// Weeks splits the cells into rows of seven. The final row may be short.
func (m Month) Weeks() [][]Cell {
	var weeks [][]Cell
	for i := 0; i < len(m.Cells); i += 7 {
		end := i + 7
		if end > len(m.Cells) {
			end = len(m.Cells)
		}
		weeks = append(weeks, m.Cells[i:end])
	}
	return weeks
}

// Written returns how many days of the month have an entry.
func (m Month) Written() int {
	n := 0
	for _, c := range m.Cells {
		if c.HasEntry {
			n++
		}
	}
	return n
}
