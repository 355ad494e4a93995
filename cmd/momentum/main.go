package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/momentum/app"
	"github.com/ayoisaiah/momentum/internal/osutil"
)

func run(ctx context.Context, args []string) error {
	return app.Get().RunContext(ctx, args)
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	err := run(ctx, os.Args)

	stop()

	if err != nil {
		pterm.Error.Println(err)
		osutil.Exit(osutil.ExitError)
	}
}
