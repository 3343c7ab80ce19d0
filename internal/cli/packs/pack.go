package packs

import (
	"fmt"

	"github.com/julianstephens/hearth/internal/cli"
)

type ListCmd struct {
	ShowIDs bool `help:"Show category and item IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	list := ctx.Packing()
	categories := list.Categories()
	if len(categories) == 0 {
		ctx.Println("Packing list is empty")
		return nil
	}

	checked, total := list.CheckedCount()
	ctx.Printf("Packing list (%d/%d packed):\n", checked, total)
	for i, cat := range categories {
		line := fmt.Sprintf("%d. %s", i+1, cat.Name)
		if c.ShowIDs {
			line += fmt.Sprintf(" (ID: %s)", cat.ID)
		}
		ctx.Println(line)
		for j, item := range cat.Items {
			mark := " "
			if item.Checked {
				mark = "x"
			}
			line := fmt.Sprintf("   %2d. [%s] %s", j+1, mark, item.Name)
			if c.ShowIDs {
				line += fmt.Sprintf(" (ID: %s)", item.ID)
			}
			ctx.Println(line)
		}
	}
	return nil
}

type AddCategoryCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *AddCategoryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	list := ctx.Packing()
	cat, ok := list.AddCategory(c.Name)
	if !ok {
		return fmt.Errorf("category name cannot be empty")
	}
	ctx.WarnIfUnsaved(list.Err())
	ctx.Printf("Added category %q\n", cat.Name)
	return nil
}

type AddItemCmd struct {
	Category string `arg:"" help:"Category position, ID or name."`
	Name     string `arg:"" help:"Item name."`
}

func (c *AddItemCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	list := ctx.Packing()
	cat, err := resolveCategory(list.Categories(), c.Category)
	if err != nil {
		return err
	}
	item, ok := list.AddItem(cat.ID, c.Name)
	if !ok {
		return fmt.Errorf("item name cannot be empty")
	}
	ctx.WarnIfUnsaved(list.Err())
	ctx.Printf("Added %q to %s\n", item.Name, cat.Name)
	return nil
}

type CheckCmd struct {
	Category string `arg:"" help:"Category position, ID or name."`
	Item     string `arg:"" help:"Item position, ID or name."`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	list := ctx.Packing()
	cat, err := resolveCategory(list.Categories(), c.Category)
	if err != nil {
		return err
	}
	item, err := resolveItem(cat, c.Item)
	if err != nil {
		return err
	}
	list.ToggleItem(cat.ID, item.ID)
	ctx.WarnIfUnsaved(list.Err())

	state := "Packed"
	if item.Checked {
		state = "Unpacked"
	}
	checked, total := list.CheckedCount()
	ctx.Printf("%s %s (%d/%d packed)\n", state, item.Name, checked, total)
	return nil
}

type DeleteItemCmd struct {
	Category string `arg:"" help:"Category position, ID or name."`
	Item     string `arg:"" help:"Item position, ID or name."`
}

func (c *DeleteItemCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	list := ctx.Packing()
	cat, err := resolveCategory(list.Categories(), c.Category)
	if err != nil {
		return err
	}
	item, err := resolveItem(cat, c.Item)
	if err != nil {
		return err
	}
	list.DeleteItem(cat.ID, item.ID)
	ctx.WarnIfUnsaved(list.Err())
	ctx.Printf("Deleted %s from %s\n", item.Name, cat.Name)
	return nil
}

type DeleteCategoryCmd struct {
	Category string `arg:"" help:"Category position, ID or name."`
}

func (c *DeleteCategoryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	list := ctx.Packing()
	cat, err := resolveCategory(list.Categories(), c.Category)
	if err != nil {
		return err
	}
	list.DeleteCategory(cat.ID)
	ctx.WarnIfUnsaved(list.Err())
	ctx.Printf("Deleted category %s and its %d items\n", cat.Name, len(cat.Items))
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	list := ctx.Packing()
	n := list.ResetAll()
	ctx.WarnIfUnsaved(list.Err())
	ctx.Printf("Unpacked %d items\n", n)
	return nil
}
