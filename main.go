package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"webpconv/logger"
)

const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		// Restore default handling so a second Ctrl-C kills the process.
		<-ctx.Done()
		stop()
	}()

	code := run(ctx, os.Args[1:], logger.DefaultOptions())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, opts *logger.RichLoggerOptions) int {
	cfg, err := ParseConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	opts.EnableColors = opts.EnableColors && !cfg.NoColor
	opts.EnableJSON = cfg.LogJSON
	console := logger.NewConsole(opts)

	processor, err := NewProcessor(cfg, NewConsoleReporter(console, cfg))
	if err != nil {
		console.Error("Configuration error: %v", err)
		return 1
	}

	if _, err := processor.Run(ctx, cfg.InputPath, cfg.OutputPath); err != nil {
		if errors.Is(err, ErrInterrupted) {
			return exitInterrupted
		}
		console.Error("Error: %v", err)
		return 1
	}
	return 0
}
