package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/quiz"
	"github.com/julianstephens/hearth/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	questions, err := quiz.LoadBank(cli.ExpandHome(ctx.Config.Quiz.Bank))
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Options{
		NightRoutine: ctx.NightRoutine(),
		Todo:         ctx.Todo(),
		Diary:        ctx.Diary(),
		Packing:      ctx.Packing(),
		Questions:    questions,
		Now:          ctx.Clock(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
