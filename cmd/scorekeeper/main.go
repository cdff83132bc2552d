// Package main runs the terminal score tracker.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	entrypoint "github.com/louisbranch/scorekeeper/internal/platform/cmd"

	scorekeepercmd "github.com/louisbranch/scorekeeper/internal/cmd/scorekeeper"
)

func main() {
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceScorekeeper))
	cfg, err := scorekeepercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scorekeepercmd.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("scorekeeper: %v", err)
	}
}
