// Package main runs the balanced stats demonstration.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"balancedstats/internal/demo"
	"balancedstats/internal/platform/config"
)

func main() {
	cfg, err := demo.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := demo.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
