package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/familybank/allowance/internal/config"
	"github.com/familybank/allowance/internal/di"
)

// ServeCmd runs the HTTP server with the catchup sweeper.
type ServeCmd struct {
	Address string `short:"a" help:"Listen address, overrides RUN_ADDRESS."`
}

func (c *ServeCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []fx.Option
	if c.Address != "" {
		address := c.Address
		opts = append(opts, fx.Decorate(func(cfg *config.Config) *config.Config {
			cfg.RunAddress = address
			return cfg
		}))
	}

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		di.Module(opts...),
	)

	run(ctx, app)
	return nil
}

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start application: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop application: %v\n", err)
		os.Exit(1)
	}
}
