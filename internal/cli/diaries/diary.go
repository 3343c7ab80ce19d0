package diaries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/diary"
	"github.com/julianstephens/hearth/internal/utils"
)

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	today := ctx.Today()
	anchor, err := cli.ParseMonth(c.Month, today)
	if err != nil {
		return err
	}

	month := ctx.Diary().Month(anchor, today)
	ctx.Printf("%s %d (%d written)\n", month.Month, month.Year, month.Written())
	ctx.Println(" Su  Mo  Tu  We  Th  Fr  Sa")
	for _, week := range month.Weeks() {
		var b strings.Builder
		for _, cell := range week {
			b.WriteString(formatCell(cell))
		}
		ctx.Println(strings.TrimRight(b.String(), " "))
	}
	ctx.Println()
	ctx.Println("* entry written, [] today")
	return nil
}

func formatCell(cell diary.Cell) string {
	if cell.Blank {
		return "    "
	}
	mark := " "
	if cell.HasEntry {
		mark = "*"
	}
	if cell.IsToday {
		return fmt.Sprintf("[%2d%s", cell.Day, mark)
	}
	return fmt.Sprintf(" %2d%s", cell.Day, mark)
}

type WriteCmd struct {
	Date string `arg:"" help:"Day to write (YYYY-MM-DD, today or yesterday)."`
	Text string `arg:"" help:"Entry text. An empty text clears the day."`
}

func (c *WriteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := cli.ParseDay(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	d := ctx.Diary()
	if err := d.Write(day, c.Text); err != nil {
		if errors.Is(err, diary.ErrFutureDate) {
			return fmt.Errorf("cannot write an entry for %s: the day has not happened yet", utils.DateKey(day))
		}
		return err
	}
	ctx.WarnIfUnsaved(d.Err())

	if strings.TrimSpace(c.Text) == "" {
		ctx.Printf("Cleared %s\n", utils.DateKey(day))
	} else {
		ctx.Printf("Saved entry for %s\n", utils.DateKey(day))
	}
	return nil
}

type ReadCmd struct {
	Date string `arg:"" optional:"" help:"Day to read (YYYY-MM-DD, today or yesterday)."`
}

func (c *ReadCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := cli.ParseDay(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	text, ok := ctx.Diary().Read(day)
	if !ok {
		ctx.Printf("No entry for %s\n", utils.DateKey(day))
		return nil
	}
	ctx.Printf("%s: %s\n", utils.DateKey(day), text)
	return nil
}

type ClearCmd struct {
	Date string `arg:"" help:"Day to clear (YYYY-MM-DD, today or yesterday)."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := cli.ParseDay(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	d := ctx.Diary()
	if !d.Clear(day) {
		ctx.Printf("No entry for %s\n", utils.DateKey(day))
		return nil
	}
	ctx.WarnIfUnsaved(d.Err())
	ctx.Printf("Cleared %s\n", utils.DateKey(day))
	return nil
}
