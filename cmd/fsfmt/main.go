// Package main is the entry point for fsfmt.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/donaldgifford/fsfmt/internal/cli"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Run(ctx, os.Args[1:], cli.Options{
		BuildInfo: cli.BuildInfo{Version: version, Commit: commit, BuildDate: date},
	})
	stop()
	if err != nil {
		var ec *cli.ExitCodeError
		if !errors.As(err, &ec) {
			fmt.Fprintf(os.Stderr, "fsfmt: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
