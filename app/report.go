package app

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/config"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/streak"
	"github.com/ayoisaiah/momentum/internal/timeutil"
	"github.com/ayoisaiah/momentum/stats"
)

// streakAction prints the current and best streaks, for one source or for
// all of them.
func streakAction(ctx *cli.Context, e *env) error {
	engine := e.engine()

	if ctx.IsSet("source") {
		src, err := activity.ParseSource(ctx.String("source"))
		if err != nil {
			return err
		}

		r, err := engine.Streak(ctx.Context, e.user(), src)
		if err != nil {
			return err
		}

		if ok, err := printStructured(ctx, r); ok || err != nil {
			return err
		}

		stats.PrintStreaks(config.Stdout, map[activity.Source]streak.Result{src: r})

		return nil
	}

	results, err := engine.Streaks(ctx.Context, e.user())
	if err != nil {
		return err
	}

	if ok, err := printStructured(ctx, results); ok || err != nil {
		return err
	}

	stats.PrintStreaks(config.Stdout, results)

	return nil
}

// heatmapAction prints the activity heatmap for the configured number of
// weeks. The --weeks flag overrides heatmap.weeks through the config.
func heatmapAction(ctx *cli.Context, e *env) error {
	days, err := e.engine().Heatmap(ctx.Context, e.user(), e.cfg.Heatmap.Weeks)
	if err != nil {
		return err
	}

	if ok, err := printStructured(ctx, days); ok || err != nil {
		return err
	}

	stats.PrintHeatmap(config.Stdout, days)

	return nil
}

// dashboardAction prints today's summary.
func dashboardAction(ctx *cli.Context, e *env) error {
	summary, err := e.composer().Compose(ctx.Context, e.user())
	if err != nil {
		return err
	}

	if ok, err := printStructured(ctx, summary); ok || err != nil {
		return err
	}

	stats.PrintDashboard(config.Stdout, summary, e.cfg.TimeFormat())

	return nil
}

// listWindow turns --since and --until into a query window.
func listWindow(ctx *cli.Context, e *env) (activity.Window, error) {
	now := e.sessions().Now()

	var w activity.Window

	if s := ctx.String("since"); s != "" {
		start, err := timeutil.FromStr(s, now)
		if err != nil {
			return w, err
		}

		w.Start = timeutil.RoundToStart(start)
	}

	if s := ctx.String("until"); s != "" {
		end, err := timeutil.FromStr(s, now)
		if err != nil {
			return w, err
		}

		w.End = timeutil.RoundToEnd(end)
	}

	return w, nil
}

// listAction prints the sessions started within a time period.
func listAction(ctx *cli.Context, e *env) error {
	w, err := listWindow(ctx, e)
	if err != nil {
		return err
	}

	sessions, err := e.db.ListSessions(ctx.Context, e.user(), w)
	if err != nil {
		return err
	}

	if sessions == nil {
		sessions = []session.Session{}
	}

	if ok, err := printStructured(ctx, sessions); ok || err != nil {
		return err
	}

	stats.PrintSessions(config.Stdout, sessions, e.cfg.TimeFormat())

	return nil
}

// serveAction runs the HTTP API until the process is interrupted.
func serveAction(ctx *cli.Context, e *env) error {
	srv := stats.NewServer(stats.Deps{
		Sessions:       e.sessions(),
		Engine:         e.engine(),
		Composer:       e.composer(),
		DefaultUser:    e.user(),
		DefaultMinutes: e.cfg.Goals.DefaultSessionMinutes,
		DefaultWeeks:   e.cfg.Heatmap.Weeks,
	})

	addr := fmt.Sprintf(":%d", e.cfg.Server.Port)

	pterm.Info.Printfln("momentum API listening on %s", addr)

	return srv.Run(ctx.Context, addr)
}
