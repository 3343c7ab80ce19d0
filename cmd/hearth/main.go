package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"

	"github.com/julianstephens/hearth/internal/cli"
	"github.com/julianstephens/hearth/internal/cli/backups"
	"github.com/julianstephens/hearth/internal/cli/diaries"
	"github.com/julianstephens/hearth/internal/cli/packs"
	"github.com/julianstephens/hearth/internal/cli/quizzes"
	"github.com/julianstephens/hearth/internal/cli/routines"
	"github.com/julianstephens/hearth/internal/cli/system"
	"github.com/julianstephens/hearth/internal/cli/todos"
	"github.com/julianstephens/hearth/internal/config"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/errors"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Store location: a SQLite or .json file, a PostgreSQL connection string, or 'keyring' to use the connection string saved in the OS keyring. PostgreSQL credentials must NOT be embedded in the connection string." name:"db" type:"string" default:"${default_db}" env:"HEARTH_DB_CONNECTION"`
	Config  string `help:"Widget settings file (YAML)." type:"path" default:"${default_config}" env:"HEARTH_CONFIG"`
	Verbose bool   `help:"Log debug output to stderr." name:"debug"`

	Init    system.InitCmd   `cmd:"" help:"Initialize hearth storage and write a default config."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Debug   system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
	Routine struct {
		List   routines.ListCmd   `cmd:"" help:"Show the night routine." default:"1"`
		Add    routines.AddCmd    `cmd:"" help:"Add a task to the routine."`
		Check  routines.CheckCmd  `cmd:"" help:"Check or uncheck a task."`
		Delete routines.DeleteCmd `cmd:"" help:"Delete tasks."`
		Reset  routines.ResetCmd  `cmd:"" help:"Uncheck every task."`
	} `cmd:"" help:"Manage the night routine checklist."`
	Todo struct {
		List   todos.ListCmd   `cmd:"" help:"List todos." default:"1"`
		Add    todos.AddCmd    `cmd:"" help:"Add a todo."`
		Done   todos.DoneCmd   `cmd:"" help:"Complete or reopen a todo."`
		Delete todos.DeleteCmd `cmd:"" help:"Delete todos."`
		Due    todos.DueCmd    `cmd:"" help:"List incomplete todos due today."`
		Notify todos.NotifyCmd `cmd:"" help:"Send today's due-todo reminder once per day."`
	} `cmd:"" help:"Manage the todo list."`
	Diary struct {
		Month diaries.MonthCmd `cmd:"" help:"Show a month calendar of entries." default:"1"`
		Write diaries.WriteCmd `cmd:"" help:"Write the entry for a day."`
		Read  diaries.ReadCmd  `cmd:"" help:"Read the entry for a day."`
		Clear diaries.ClearCmd `cmd:"" help:"Remove the entry for a day."`
	} `cmd:"" help:"Keep a one-line diary."`
	Pack struct {
		List           packs.ListCmd           `cmd:"" help:"Show the packing list." default:"1"`
		AddCategory    packs.AddCategoryCmd    `cmd:"" help:"Add a category."`
		AddItem        packs.AddItemCmd        `cmd:"" help:"Add an item to a category."`
		Check          packs.CheckCmd          `cmd:"" help:"Pack or unpack an item."`
		DeleteItem     packs.DeleteItemCmd     `cmd:"" help:"Delete an item."`
		DeleteCategory packs.DeleteCategoryCmd `cmd:"" help:"Delete a category and its items."`
		Reset          packs.ResetCmd          `cmd:"" help:"Unpack every item."`
	} `cmd:"" help:"Manage the travel packing checklist."`
	Quiz   quizzes.QuizCmd `cmd:"" help:"Take the quiz."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A desk of small daily widgets: night routine, todo list, diary, packing list and quiz"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_db":     constants.DefaultDBPath,
			"default_config": constants.DefaultConfigFile,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: logDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	store, err := cli.OpenStore(CLI.DB)
	if err != nil {
		errors.Fatal(err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	appCtx := cli.NewContext(store, cfg)
	appCtx.ConfigPath = CLI.Config

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("Command execution failed", "command", ctx.Command(), "error", err)
		fmt.Fprintln(os.Stderr, errors.Format(err))
		_ = store.Close()
		os.Exit(1)
	}
}

// logDir keeps logs next to a file store, or next to the config file when the
// store is a database server.
func logDir() string {
	if CLI.DB == cli.KeyringTarget || postgres.IsConnString(CLI.DB) {
		return filepath.Dir(CLI.Config)
	}
	return filepath.Dir(cli.ExpandHome(CLI.DB))
}
