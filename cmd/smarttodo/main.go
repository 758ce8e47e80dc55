package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"smart-todo/config"
	"smart-todo/internal/app"
	"smart-todo/internal/cli"
	"smart-todo/pkg/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Only errors reach the terminal; the server logs everything else.
	logger := log.Init(log.ZapConfig{
		Level:    "error",
		Mode:     cfg.Logger.Mode,
		Encoding: log.EncodingConsole,
	})

	// Ctrl-C cancels the running command through ctx
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	// Same wiring as the API server, minus HTTP and Telegram
	root := cli.NewRootCmd(&cli.App{
		Tasks:           svc.UseCase,
		Location:        svc.Calendar.Location(),
		CredentialsPath: cfg.GoogleCalendar.CredentialsPath,
		TokenPath:       cfg.GoogleCalendar.TokenPath,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	})
	return root.ExecuteContext(ctx)
}
