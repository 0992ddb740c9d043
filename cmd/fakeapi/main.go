// Command fakeapi serves an in-memory Achievo backend for local CLI runs.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/achievo/internal/buildinfo"
	"github.com/dmitrijs2005/achievo/internal/fakeapi"
	"github.com/dmitrijs2005/achievo/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := fakeapi.LoadConfig()
	logger := logging.New(os.Stdout, "info", "json")

	srv, err := fakeapi.NewServer(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, "fake API stopped", "error", err)
		os.Exit(1)
	}
}
