package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/suivi/internal/cli"
	"github.com/alexanderramin/suivi/internal/config"
	"github.com/alexanderramin/suivi/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --config is applied later by the root command; this resolves
	// SUIVI_CONFIG, ./suivi.yaml and the defaults.
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := cli.NewApp(cfg, logger, level,
		service.NewSlogUseCaseObserver(logger),
		service.NewMetricsUseCaseObserver(reg),
	)
	app.Metrics = reg

	// Credentials are prompted for only on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
