package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/momentum/internal/config"
	"github.com/ayoisaiah/momentum/internal/osutil"
	"github.com/ayoisaiah/momentum/internal/pathutil"
)

var errNoEditor = errors.New("no text editor found: set $VISUAL or $EDITOR")

const (
	envNoColor         = "NO_COLOR"
	envMomentumNoColor = "MOMENTUM_NO_COLOR"
)

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	args, err := shellquote.Split(osutil.Editor())
	if err != nil {
		return fmt.Errorf("unable to parse editor command: %w", err)
	}

	if len(args) == 0 {
		return errNoEditor
	}

	args = append(args, cfg.System.ConfigPath)

	cmd := exec.CommandContext(ctx.Context, args[0], args[1:]...)

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envMomentumNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return pathutil.Initialize()
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting momentum")

	return nil
}
