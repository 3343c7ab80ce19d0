package todos

import (
	"context"
	"fmt"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/notifier"
	"github.com/julianstephens/hearth/internal/policy"
	"github.com/julianstephens/hearth/internal/storage"
	"github.com/julianstephens/hearth/internal/utils"
)

type ListCmd struct {
	ShowIDs bool `help:"Show entry IDs." name:"show-ids"`
	Open    bool `help:"Show only incomplete entries."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := ctx.Todo()
	entries := m.Entries()
	if len(entries) == 0 {
		ctx.Println("No todos found")
		return nil
	}

	ctx.Printf("Todos (%d/%d done):\n", m.CompletedCount(), m.Len())
	for i, e := range entries {
		if c.Open && e.Done() {
			continue
		}
		ctx.Println(cli.FormatEntry(i, e, c.ShowIDs))
	}
	return nil
}

type AddCmd struct {
	Title string `arg:"" help:"What needs doing."`
	Due   string `help:"Due date (YYYY-MM-DD, today or tomorrow)."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	due := ""
	if c.Due != "" {
		day, err := cli.ParseDay(c.Due, ctx.Today())
		if err != nil {
			return err
		}
		due = utils.DateKey(day)
	}

	m := ctx.Todo()
	e, ok := m.Add(c.Title, due)
	if !ok {
		return fmt.Errorf("title cannot be empty")
	}
	ctx.WarnIfUnsaved(m.Err())
	ctx.Printf("Added %q\n", e.Title)
	return nil
}

type DoneCmd struct {
	Ref string `arg:"" help:"Position in the list or entry ID."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := ctx.Todo()
	id, err := cli.ResolveEntry(m.Entries(), c.Ref)
	if err != nil {
		return err
	}
	m.Toggle(id)
	ctx.WarnIfUnsaved(m.Err())

	e, _ := m.Get(id)
	if e.Done() {
		ctx.Printf("Completed %s\n", e.Title)
	} else {
		ctx.Printf("Reopened %s\n", e.Title)
	}
	return nil
}

type DeleteCmd struct {
	Refs []string `arg:"" help:"Positions in the list or entry IDs."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := ctx.Todo()
	entries := m.Entries()
	ids := make([]string, 0, len(c.Refs))
	for _, ref := range c.Refs {
		id, err := cli.ResolveEntry(entries, ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	n := m.DeleteMany(ids)
	ctx.WarnIfUnsaved(m.Err())
	ctx.Printf("Deleted %d todos\n", n)
	return nil
}

type DueCmd struct{}

func (c *DueCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	due := ctx.Todo().DueToday(ctx.Today())
	if len(due) == 0 {
		ctx.Println("Nothing due today")
		return nil
	}
	ctx.Printf("Due today (%d):\n", len(due))
	for i, e := range due {
		ctx.Println(cli.FormatEntry(i, e, false))
	}
	return nil
}

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !ctx.Config.Notifications.Enabled {
		if c.DryRun {
			ctx.Println("Notifications are disabled in config.")
		}
		return nil
	}

	guard := policy.DailyGuard{Store: ctx.Store, Key: constants.KeyTodoNotified}
	var sender notifier.Sender = notifier.NewTrayNotifier()
	if c.DryRun {
		sender = notifier.PrintSender{W: ctx.Out}
		// A dry run sees the stored flag but never records a send
		scratch := storage.NewMemoryStore()
		if last := guard.Last(); last != "" {
			if err := scratch.Set(guard.Key, last); err != nil {
				return err
			}
		}
		guard.Store = scratch
	}

	reminder := &notifier.Reminder{
		Todo:   ctx.Todo(),
		Guard:  guard,
		Sender: sender,
	}
	res, err := reminder.Run(context.Background(), ctx.Today())
	if err != nil {
		return err
	}
	if c.DryRun && res.Outcome != notifier.Sent {
		ctx.Printf("No notification: %s\n", res.Outcome)
	}
	return nil
}
