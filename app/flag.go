package app

import "github.com/urfave/cli/v2"

var (
	userFlag = &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Act on behalf of this user id (default: user.id from the config file)",
		EnvVars: []string{"MOMENTUM_USER"},
	}

	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Storage backend: bolt or sqlite",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each completed session",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the result as JSON",
	}

	yamlFlag = &cli.BoolFlag{
		Name:  "yaml",
		Usage: "Print the result as YAML",
	}

	minutesFlag = &cli.IntFlag{
		Name:    "minutes",
		Aliases: []string{"m"},
		Usage:   "Session length in minutes (default: goals.default_session_minutes)",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Do not ask for confirmation",
	}

	sourceFlag = &cli.StringFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "Limit the streak to one source: focus, task or habit",
	}

	weeksFlag = &cli.IntFlag{
		Name:    "weeks",
		Aliases: []string{"w"},
		Usage:   "Number of weeks to show, from 1 to 52 (default: heatmap.weeks)",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only include sessions started on or after this date (e.g. '2 weeks ago', '2025-01-02')",
		Value: "7 days ago",
	}

	untilFlag = &cli.StringFlag{
		Name:  "until",
		Usage: "Only include sessions started on or before this date",
	}

	dateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "The day the habit was done (e.g. 'yesterday', '2025-01-02')",
		Value:   "today",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Include completed tasks or archived habits",
	}

	portFlag = &cli.UintFlag{
		Name:  "port",
		Usage: "Port for the HTTP API (default: server.port)",
	}
)

// outputFlags are accepted by every read command.
var outputFlags = []cli.Flag{jsonFlag, yamlFlag}
