package app

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/ayoisaiah/momentum/internal/config"
	"github.com/ayoisaiah/momentum/internal/dashboard"
	"github.com/ayoisaiah/momentum/internal/logging"
	"github.com/ayoisaiah/momentum/internal/pathutil"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/ui"
	"github.com/ayoisaiah/momentum/stats"
	"github.com/ayoisaiah/momentum/store"
)

// env is what an action needs: the resolved config and an open store.
type env struct {
	cfg *config.Config
	db  store.DB
	log io.Closer
}

// interactive reports whether stdin is a terminal.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// withResolvedPaths records the database and log locations for the driver
// chosen by the earlier options.
func withResolvedPaths() config.Option {
	return func(c *config.Config) error {
		return config.WithPaths(
			pathutil.DBFilePath(c.Storage.Driver),
			pathutil.LogFilePath(),
		)(c)
	}
}

// loadConfig builds the config from the first-run prompt, the config file and
// the command line, in that order.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	var opts []config.Option

	if interactive() {
		opts = append(opts, config.WithPromptConfig(configPath))
	}

	opts = append(opts,
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
		withResolvedPaths(),
	)

	return config.New(opts...)
}

// opener connects to the configured store.
type opener func(driver, path string) (store.DB, error)

func newEnv(ctx *cli.Context, open opener) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	logFile, err := logging.Setup(cfg.System.LogPath, cfg.Settings.LogLevel)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx.Context, "config loaded", slog.String("config", cfg.String()))

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := open(cfg.Storage.Driver, cfg.System.DBPath)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	return &env{cfg: cfg, db: db, log: logFile}, nil
}

func (e *env) Close() error {
	return errors.Join(e.db.Close(), e.log.Close())
}

func (e *env) user() string {
	return e.cfg.User.ID
}

func (e *env) sessions() *session.Service {
	return session.NewService(e.db, session.WithSessionCmd(e.cfg.Settings.Cmd))
}

func (e *env) engine() *stats.Engine {
	return stats.NewEngine(e.db, stats.WithWindowDays(e.cfg.Streak.WindowDays))
}

func (e *env) composer() *dashboard.Composer {
	return dashboard.NewComposer(
		e.db,
		dashboard.WithDailyFocusGoal(e.cfg.Goals.DailyFocusMinutes),
		dashboard.WithWindowDays(e.cfg.Streak.WindowDays),
	)
}

// withEnv wraps an action that needs an env. The store and log file are
// released when the action returns.
func withEnv(fn func(*cli.Context, *env) error) cli.ActionFunc {
	return envAction(store.Open, fn)
}

// withSharedEnv is withEnv for commands that run until interrupted. The store
// is only locked while a call is in progress, so other commands keep working.
func withSharedEnv(fn func(*cli.Context, *env) error) cli.ActionFunc {
	return envAction(store.OpenShared, fn)
}

func envAction(open opener, fn func(*cli.Context, *env) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		e, err := newEnv(ctx, open)
		if err != nil {
			return err
		}

		defer func() {
			if cerr := e.Close(); cerr != nil {
				slog.ErrorContext(ctx.Context, "closing resources", slog.Any("error", cerr))
			}
		}()

		return fn(ctx, e)
	}
}
