package quizzes

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/quiz"
)

// askFunc returns the option index chosen for q. Replaced in tests.
type askFunc func(q models.QuizQuestion, total int) (int, error)

var ask askFunc = askWithForm

func askWithForm(q models.QuizQuestion, total int) (int, error) {
	options := make([]huh.Option[int], len(q.Options))
	for i, opt := range q.Options {
		options[i] = huh.NewOption(opt, i)
	}

	choice := -1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("Question %d of %d", q.Number, total)).
				Description(q.Question).
				Options(options...).
				Value(&choice),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return -1, err
	}
	return choice, nil
}

type QuizCmd struct {
	Bank  string `help:"YAML question bank to use instead of the configured one." type:"path"`
	Quiet bool   `help:"Only print the final score."`
}

func (c *QuizCmd) Run(ctx *cli.Context) error {
	path := c.Bank
	if path == "" {
		path = cli.ExpandHome(ctx.Config.Quiz.Bank)
	}
	questions, err := quiz.LoadBank(path)
	if err != nil {
		return err
	}

	session := quiz.NewSession(questions)
	for !session.IsFinished() {
		q, _ := session.Current()
		choice, err := ask(q, session.Total())
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Printf("Quiz stopped after %d of %d questions (score %d)\n", session.Index(), session.Total(), session.Score())
				return nil
			}
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if !session.Select(choice) {
			return fmt.Errorf("invalid answer %d for question %d", choice, q.Number)
		}
		correct, _ := session.Confirm()
		if c.Quiet {
			continue
		}
		if correct {
			ctx.Printf("%d. Correct!\n", q.Number)
		} else {
			ctx.Printf("%d. Wrong, the answer was %s\n", q.Number, q.Options[q.AnswerIndex])
		}
	}

	ctx.Printf("Quiz complete: %d/%d correct\n", session.Score(), session.Total())
	return nil
}
