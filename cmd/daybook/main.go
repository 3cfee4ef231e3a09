package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." placeholder:"FILE"`
	Store   string `help:"Store location: a .db or .json file, dir://PATH, :memory: or a postgres:// URI without credentials." placeholder:"LOCATION"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init       cli.InitCmd    `cmd:"" help:"Initialize daybook storage."`
	Tui        cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor     cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Habit      cli.HabitCmd   `cmd:"" help:"Manage habits and mark days."`
	Journal    cli.JournalCmd `cmd:"" help:"Manage journal entries."`
	Stats      cli.StatsCmd   `cmd:"" help:"Show statistics and the weekly chart."`
	Backup     cli.BackupCmd  `cmd:"" help:"Manage backups."`
	Remind     cli.RemindCmd  `cmd:"" help:"Send a desktop notification for habits not yet recorded today."`
	ConfigCmd  cli.ConfigCmd  `cmd:"" name:"config" help:"Manage stored database credentials."`
	DebugCmd   cli.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	VersionCmd cli.VersionCmd `cmd:"" name:"version" help:"Print the version."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker and mood journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Store != "" {
		if cfg.Store, err = config.ExpandPath(CLI.Store); err != nil {
			errors.Fatal(err)
		}
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "store", cfg.Store, "config", cfg.File)

	appCtx := cli.NewContext(cfg)
	runErr := ctx.Run(appCtx)
	errors.Fatal(stderrors.Join(runErr, appCtx.Close()))
}
