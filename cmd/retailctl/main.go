package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/retail-admin/internal/admin/storage"
	"github.com/jhoicas/retail-admin/internal/interfaces/cli"
	"github.com/jhoicas/retail-admin/pkg/config"
	"github.com/jhoicas/retail-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	state, err := storage.OpenFile(cfg.Client.StateFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Client.StateFile).Msg("no se pudo abrir el estado de sesión")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cli.Execute(ctx, cli.Deps{
		Config:  cfg.Client,
		Storage: state,
		Logger:  log,
		In:      os.Stdin,
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
	}, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
