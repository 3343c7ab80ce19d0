package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/config"
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing config file with defaults."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized hearth storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigPath == "" {
		return nil
	}
	if _, err := os.Stat(ctx.ConfigPath); err == nil && !c.Force {
		ctx.Printf("Config already exists at: %s\n", ctx.ConfigPath)
		return nil
	}
	if err := config.Save(ctx.ConfigPath, config.NewDefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	ctx.Printf("Wrote default config to: %s\n", ctx.ConfigPath)
	return nil
}
