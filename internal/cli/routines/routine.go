package routines

import (
	"fmt"

	"github.com/julianstephens/hearth/internal/cli"
)

type ListCmd struct {
	ShowIDs bool `help:"Show entry IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := ctx.NightRoutine()
	entries := m.Entries()
	if len(entries) == 0 {
		ctx.Println("Night routine is empty")
		return nil
	}

	ctx.Printf("Night routine (%d/%d done):\n", m.CompletedCount(), m.Len())
	for i, e := range entries {
		ctx.Println(cli.FormatEntry(i, e, c.ShowIDs))
	}
	return nil
}

type AddCmd struct {
	Title string `arg:"" help:"Task to add to the routine."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := ctx.NightRoutine()
	e, ok := m.Add(c.Title, "")
	if !ok {
		return fmt.Errorf("title cannot be empty")
	}
	ctx.WarnIfUnsaved(m.Err())
	ctx.Printf("Added %q to the night routine\n", e.Title)
	return nil
}

type CheckCmd struct {
	Ref string `arg:"" help:"Position in the list or entry ID."`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := ctx.NightRoutine()
	id, err := cli.ResolveEntry(m.Entries(), c.Ref)
	if err != nil {
		return err
	}
	m.Toggle(id)
	ctx.WarnIfUnsaved(m.Err())

	e, _ := m.Get(id)
	state := "unchecked"
	if e.Done() {
		state = "checked"
	}
	ctx.Printf("%s %s (%d/%d done)\n", state, e.Title, m.CompletedCount(), m.Len())
	return nil
}

type DeleteCmd struct {
	Refs []string `arg:"" help:"Positions in the list or entry IDs."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := ctx.NightRoutine()
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
	ctx.Printf("Deleted %d entries\n", n)
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := ctx.NightRoutine()
	n := m.ResetAll()
	ctx.WarnIfUnsaved(m.Err())
	ctx.Printf("Unchecked %d entries\n", n)
	return nil
}
