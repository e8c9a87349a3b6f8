// Package main provides the entry point for the adminify CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BLewisDesDev/ADMINify/cmd/adminify/app"
	"github.com/BLewisDesDev/ADMINify/cmd/adminify/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, application, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
