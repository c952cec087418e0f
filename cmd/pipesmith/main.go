// Package main provides the entry point for the pipesmith CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pipesmith/pipesmith/internal/cli"
)

// Build information set at build time via ldflags.
var (
	version = "" //nolint:gochecknoglobals // Set via ldflags
	commit  = "" //nolint:gochecknoglobals // Set via ldflags
	date    = "" //nolint:gochecknoglobals // Set via ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	err := cli.Execute(ctx, info)
	cli.CloseLogFile()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCodeForError(err))
	}
}
