// Package main provides a CLI for running Lua scenario scripts against the
// score ledger.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	entrypoint "github.com/louisbranch/scorekeeper/internal/platform/cmd"
	"github.com/louisbranch/scorekeeper/internal/platform/config"

	scenariocmd "github.com/louisbranch/scorekeeper/internal/cmd/scenario"
)

func main() {
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceScenario))
	cfg, err := scenariocmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scenariocmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
