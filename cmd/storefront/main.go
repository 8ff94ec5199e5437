package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/deliciousbites/internal/buildinfo"
	"github.com/dmitrijs2005/deliciousbites/internal/cli"
	"github.com/dmitrijs2005/deliciousbites/internal/config"
	"github.com/dmitrijs2005/deliciousbites/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// the REPL blocks on stdin, so an interrupt exits from here
	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			fmt.Println()
			_ = app.Close()
			os.Exit(130)
		case <-finished:
		}
	}()

	app.Run(ctx)
	close(finished)

	if err := app.Close(); err != nil {
		logger.Error(ctx, "failed to close storage", "err", err)
	}
}
