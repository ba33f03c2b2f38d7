package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"unitconv/internal/cli"
	"unitconv/internal/platform/logger"
	id "unitconv/pkg/domain"
)

func main() {
	dimension := flag.String("dimension", "length", "length, time, mass or speed")
	logLevel := flag.String("log-level", "warn", "log level for rejected input")
	flag.Parse()

	log := logger.NewWithWriter(os.Stderr, "text", *logLevel)

	kind, err := id.ParseKind(*dimension)
	if err != nil {
		log.Error("invalid dimension", "dimension", *dimension, "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prompt, err := cli.NewPrompt(kind, os.Stdin, os.Stdout, log)
	if err != nil {
		log.Error("cannot start converter", "error", err)
		os.Exit(1)
	}
	if err := prompt.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("converter stopped", "error", err)
		os.Exit(1)
	}
}
