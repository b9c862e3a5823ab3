package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobmcallan/vitae/internal/app"
	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/server"
)

func main() {
	configFlag := flag.String("config", "", "path to vitae.toml (default: $VITAE_CONFIG or vitae.toml beside the binary)")
	flag.Parse()

	a, err := app.NewApp(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)

	srv := server.NewServer(a)
	shutdownChan := make(chan struct{}, 1)
	srv.SetShutdownChannel(shutdownChan)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	a.Logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)).
		Str("storage", a.Config.Storage.Backend).
		Msg("Server ready")

	// Wait for interrupt signal or the dev shutdown endpoint
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
		a.Logger.Info().Msg("Shutdown signal received")
	case <-shutdownChan:
		a.Logger.Info().Msg("Shutdown requested")
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.GetShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	a.Close()
	common.PrintShutdownBanner(a.Logger)
}
