package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"leaf/config"
	"leaf/misc"
	"leaf/progress"
	"leaf/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}

	if env.Store, err = openStore(env.Cfg, env.Log); err != nil {
		// reading still works for the session, progress will not survive it
		env.Log.Warn("Durable progress store unavailable, continuing in memory", zap.Error(err))
		env.Store = progress.NewMemory()
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Store != nil {
		if er := env.Store.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close progress store: %w", er))
		}
	}
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()
	return
}

// openStore resolves the configured progress backend. An empty path lands in
// the per-user state directory.
func openStore(cfg *config.Config, log *zap.Logger) (progress.Store, error) {
	path := cfg.Storage.Path
	if len(path) == 0 {
		path = filepath.Join(progress.StateDir(misc.GetAppName()), "progress"+cfg.Storage.Kind.Ext())
	}
	switch cfg.Storage.Kind {
	case config.StoreKindJson:
		return progress.OpenJSON(path, cfg.Reader.PagesPerChapter, log)
	default:
		return progress.OpenSQLite(path, cfg.Reader.PagesPerChapter, log)
	}
}

// Ignore urfave/cli default error handling - cli.Exit() looks non-transparent
// and unnecessary, subcommands return regular errors.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt so the reader can flush the last
	// position before going away
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "paged terminal reader for long-form books",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "verbose console logging to help troubleshooting"},
		},
		Commands: []*cli.Command{
			readCmd,
			infoCmd,
			resumeCmd,
			{
				Name:  "dumpconfig",
				Usage: "print effective configuration (YAML)",
				Action: func(ctx context.Context, _ *cli.Command) error {
					data, err := config.Dump(state.EnvFromContext(ctx).Cfg)
					if err != nil {
						return err
					}
					_, err = os.Stdout.Write(data)
					return err
				},
			},
		},
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		if !errWasHandled {
			fmt.Fprintf(os.Stderr, "\n*** ERROR ***\n\n%+v\n", err)
		}
		os.Exit(1)
	}
}
