package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/torophy/internal/config"
	"github.com/zeusync/torophy/internal/core/observability/log"
	"github.com/zeusync/torophy/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config; the demo scene is used when empty")
	steps := flag.Int("steps", 0, "run N steps headless, log the checksum and exit")
	flag.Parse()

	if err := run(*configPath, *steps); err != nil {
		fmt.Fprintln(os.Stderr, "torophy:", err)
		os.Exit(1)
	}
}

func run(configPath string, steps int) error {
	cfg := config.Demo()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if steps > 0 {
		cfg.Server.Enabled = false
	}

	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if steps > 0 {
		if err = app.Runner.StepN(steps); err != nil {
			return err
		}
		app.Logger.Info("Headless run finished",
			log.Int("steps", steps),
			log.Int("bodies", app.Space.Len()),
			log.Uint64("checksum", app.Space.Checksum()))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
