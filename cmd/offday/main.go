package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/offday/internal/cli"
	"github.com/julianstephens/offday/internal/config"
	"github.com/julianstephens/offday/internal/constants"
	"github.com/julianstephens/offday/internal/errors"
	"github.com/julianstephens/offday/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `help:"Config file path. Defaults to ~/.config/offday/config.toml." type:"path" name:"config-file"`
	DB         string `help:"SQLite path, PostgreSQL connection string without a password, or 'keyring'. Overrides the db config setting." name:"db"`
	DebugMode  bool   `help:"Log debug output to stderr." name:"debug"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize offday storage."`
	Generate cli.GenerateCmd `cmd:"" help:"Find every schedule with the requested number of OFF days." default:"1"`
	Browse   cli.BrowseCmd   `cmd:"" help:"Browse matching schedules interactively."`
	Watch    cli.WatchCmd    `cmd:"" help:"Regenerate schedules whenever a catalog file changes."`
	Catalog  cli.CatalogCmd  `cmd:"" help:"Manage stored catalogs."`
	Validate cli.ValidateCmd `cmd:"" help:"Check a catalog for problems."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Find weekly course schedules that leave the OFF days you want."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.DB = config.ExpandPath(CLI.DB)
	}
	if CLI.DebugMode {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir()}); err != nil {
		errors.Fatal(err)
	}
	logger.Debug("Starting", "command", kctx.Command(), "config", cfg.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{Config: cfg, Out: os.Stdout, Ctx: ctx}
	appCtx.Store, appCtx.StoreErr = cli.OpenStore(cfg.DB)
	defer func() {
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
	}()

	if err := kctx.Run(appCtx); err != nil {
		stop()
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
		errors.Fatal(err)
	}
}
