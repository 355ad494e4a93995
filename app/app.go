// Package app wires the momentum command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/momentum/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func sessionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "start",
			Usage:     "Start a focus session",
			UsageText: "momentum start [--minutes N] [TASK...]",
			Flags:     append([]cli.Flag{minutesFlag}, outputFlags...),
			Action:    withEnv(startAction),
		},
		{
			Name:      "pause",
			Usage:     "Pause the running focus session",
			UsageText: "momentum pause [SESSION_ID]",
			Flags:     outputFlags,
			Action:    withEnv(pauseAction),
		},
		{
			Name:      "resume",
			Usage:     "Resume a paused focus session",
			UsageText: "momentum resume [SESSION_ID]",
			Flags:     outputFlags,
			Action:    withEnv(resumeAction),
		},
		{
			Name:      "complete",
			Usage:     "Complete the current focus session",
			UsageText: "momentum complete [SESSION_ID]",
			Flags:     outputFlags,
			Action:    withEnv(completeAction),
		},
		{
			Name:      "cancel",
			Usage:     "Discard the current focus session",
			UsageText: "momentum cancel [--yes] [SESSION_ID]",
			Flags:     append([]cli.Flag{yesFlag}, outputFlags...),
			Action:    withEnv(cancelAction),
		},
		{
			Name:   "status",
			Usage:  "Print the current focus session",
			Flags:  outputFlags,
			Action: withEnv(statusAction),
		},
		{
			Name:   "watch",
			Usage:  "Show a live countdown of the current focus session",
			Action: withSharedEnv(watchAction),
		},
		{
			Name:  "list",
			Usage: "List focus sessions. Defaults to the last 7 days",
			Flags: append([]cli.Flag{
				sinceFlag,
				untilFlag,
			}, outputFlags...),
			Action: withEnv(listAction),
		},
	}
}

func reportCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "streak",
			Usage:  "Print current and best streaks",
			Flags:  append([]cli.Flag{sourceFlag}, outputFlags...),
			Action: withEnv(streakAction),
		},
		{
			Name:   "heatmap",
			Usage:  "Print the activity heatmap",
			Flags:  append([]cli.Flag{weeksFlag}, outputFlags...),
			Action: withEnv(heatmapAction),
		},
		{
			Name:   "dashboard",
			Usage:  "Summarize today's activity",
			Flags:  outputFlags,
			Action: withEnv(dashboardAction),
		},
		{
			Name:   "serve",
			Usage:  "Serve the JSON HTTP API",
			Flags:  []cli.Flag{portFlag},
			Action: withSharedEnv(serveAction),
		},
	}
}

func recordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "task",
			Usage: "Add, complete and list tasks",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Add a task",
					UsageText: "momentum task add TITLE...",
					Flags:     outputFlags,
					Action:    withEnv(taskAddAction),
				},
				{
					Name:      "done",
					Usage:     "Mark a task as completed",
					UsageText: "momentum task done ID|TITLE",
					Flags:     outputFlags,
					Action:    withEnv(taskDoneAction),
				},
				{
					Name:   "list",
					Usage:  "List open tasks",
					Flags:  append([]cli.Flag{allFlag}, outputFlags...),
					Action: withEnv(taskListAction),
				},
			},
		},
		{
			Name:  "habit",
			Usage: "Add, check off, archive and list habits",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Add a habit",
					UsageText: "momentum habit add NAME...",
					Flags:     outputFlags,
					Action:    withEnv(habitAddAction),
				},
				{
					Name:      "check",
					Usage:     "Record that a habit was done",
					UsageText: "momentum habit check [--date DATE] ID|NAME",
					Flags:     append([]cli.Flag{dateFlag}, outputFlags...),
					Action:    withEnv(habitCheckAction),
				},
				{
					Name:      "archive",
					Usage:     "Hide a habit from streaks and the heatmap",
					UsageText: "momentum habit archive ID|NAME",
					Action:    withEnv(habitArchiveAction),
				},
				{
					Name:   "list",
					Usage:  "List active habits",
					Flags:  append([]cli.Flag{allFlag}, outputFlags...),
					Action: withEnv(habitListAction),
				},
			},
		},
	}
}

// Get retrieves the momentum app instance.
func Get() *cli.App {
	commands := []*cli.Command{
		{
			Name:   "edit-config",
			Usage:  "Edit the configuration file",
			Action: editConfigAction,
		},
	}

	commands = append(commands, sessionCommands()...)
	commands = append(commands, reportCommands()...)
	commands = append(commands, recordCommands()...)

	return &cli.App{
		Name: "momentum",
		Usage: `
		Momentum tracks focus sessions, tasks and habits from the command-line,
		and keeps streaks and an activity heatmap of the days you showed up.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands:             commands,
		Flags: []cli.Flag{
			userFlag,
			driverFlag,
			sessionCmdFlag,
			logLevelFlag,
			noColorFlag,
		},
		Reader:    config.Stdin,
		Writer:    config.Stdout,
		ErrWriter: config.Stderr,
		Before:    beforeAction,
		After:     afterAction,
	}
}
