// Package main is the entry point for the lazystrings application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chmouel/lazystrings/internal/bootstrap"
	"github.com/chmouel/lazystrings/internal/buildinfo"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	code := bootstrap.Run(ctx, os.Args)
	stop()
	os.Exit(code)
}
