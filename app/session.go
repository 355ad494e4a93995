package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/momentum/internal/config"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/stats"
	"github.com/ayoisaiah/momentum/timer"
)

const noSessionMsg = "No focus session in progress. Start one with 'momentum start'"

// sessionOutput is the structured form of a session for --json and --yaml.
type sessionOutput struct {
	session.Session  `yaml:",inline"`
	RemainingSeconds int `json:"remaining_seconds" yaml:"remaining_seconds"`
}

func printSession(ctx *cli.Context, e *env, sess *session.Session, remaining int) error {
	ok, err := printStructured(ctx, sessionOutput{*sess, remaining})
	if ok || err != nil {
		return err
	}

	stats.PrintCurrent(config.Stdout, sess, remaining, e.cfg.TimeFormat())

	return nil
}

// startAction handles the start command. Any arguments form the task
// description.
func startAction(ctx *cli.Context, e *env) error {
	minutes := e.cfg.Goals.DefaultSessionMinutes
	if ctx.IsSet("minutes") {
		minutes = ctx.Int("minutes")
	}

	task := strings.Join(ctx.Args().Slice(), " ")

	svc := e.sessions()

	sess, err := svc.Start(ctx.Context, e.user(), minutes, task)
	if err != nil {
		return err
	}

	return printSession(ctx, e, sess, sess.Remaining(svc.Now()))
}

// target resolves the session a transition applies to: the id given as the
// first argument, or the user's open session.
func target(ctx *cli.Context, e *env, svc *session.Service) (string, error) {
	if id := ctx.Args().First(); id != "" {
		return id, nil
	}

	sess, err := svc.Current(ctx.Context, e.user())
	if err != nil {
		return "", err
	}

	return sess.ID, nil
}

// transitionAction builds the action for pause, resume, complete and cancel.
func transitionAction(
	verb string,
	fn func(svc *session.Service, ctx *cli.Context, userID, id string) (*session.Session, error),
) func(*cli.Context, *env) error {
	return func(ctx *cli.Context, e *env) error {
		svc := e.sessions()

		id, err := target(ctx, e, svc)
		if err != nil {
			return err
		}

		sess, err := fn(svc, ctx, e.user(), id)
		if err != nil {
			return err
		}

		if ok, err := printStructured(ctx, sessionOutput{*sess, sess.Remaining(svc.Now())}); ok || err != nil {
			return err
		}

		pterm.Success.Printfln("Focus session %s", verb)

		if sess.Status == session.Paused {
			pterm.Info.Printfln(
				"%s left. Resume with 'momentum resume'",
				session.FormatRemaining(sess.Remaining(svc.Now())),
			)
		}

		return nil
	}
}

var (
	pauseAction = transitionAction("paused",
		func(svc *session.Service, ctx *cli.Context, userID, id string) (*session.Session, error) {
			return svc.Pause(ctx.Context, userID, id)
		})

	resumeAction = transitionAction("resumed",
		func(svc *session.Service, ctx *cli.Context, userID, id string) (*session.Session, error) {
			return svc.Resume(ctx.Context, userID, id)
		})

	completeAction = transitionAction("completed",
		func(svc *session.Service, ctx *cli.Context, userID, id string) (*session.Session, error) {
			return svc.Complete(ctx.Context, userID, id)
		})

	cancelAction = transitionAction("cancelled",
		func(svc *session.Service, ctx *cli.Context, userID, id string) (*session.Session, error) {
			if !ctx.Bool("yes") && interactive() {
				if err := confirmCancel(); err != nil {
					return nil, err
				}
			}

			return svc.Cancel(ctx.Context, userID, id)
		})
)

var errCancelAborted = errors.New("cancel aborted: the session is still running")

// confirmCancel asks before a session is discarded.
func confirmCancel() error {
	confirmed := false

	err := huh.NewConfirm().
		Title("Cancel the current focus session?").
		Description("Cancelled sessions do not count towards streaks.").
		Affirmative("Yes, cancel it").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		return err
	}

	if !confirmed {
		return errCancelAborted
	}

	return nil
}

// statusAction prints the user's open session.
func statusAction(ctx *cli.Context, e *env) error {
	svc := e.sessions()

	sess, err := svc.Current(ctx.Context, e.user())
	if errors.Is(err, session.ErrNotFound) {
		if ok, err := printStructured(ctx, nil); ok || err != nil {
			return err
		}

		pterm.Info.Println(noSessionMsg)

		return nil
	}

	if err != nil {
		return err
	}

	return printSession(ctx, e, sess, sess.Remaining(svc.Now()))
}

// watchAction shows a live countdown of the open session.
func watchAction(ctx *cli.Context, e *env) error {
	t := timer.New(ctx.Context, e.sessions(), timer.Options{
		UserID:     e.user(),
		TimeFormat: e.cfg.TimeFormat(),
		DarkTheme:  e.cfg.Display.DarkTheme,
	})

	return t.Run()
}
