package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/roverlink-io/roverlink/cmd/rover-dispatcher/app/options"
	"github.com/roverlink-io/roverlink/pkg/app"
	"github.com/roverlink-io/roverlink/pkg/log"
)

const (
	commandName = "rover-dispatcher"
	commandDesc = `The rover dispatcher polls a command queue and drives a two-motor
differential rover over a serial link to its EV3 brick. Commands are executed
strictly one at a time; the queue is not polled while a command is in flight.`
)

// NewApp assembles the rover-dispatcher command line application.
func NewApp() *app.App {
	opts := options.NewDispatcherOptions()
	return app.NewApp(
		commandName,
		"Launch the rover command dispatcher",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithRunFunc(run(opts)),
	)
}

func run(opts *options.DispatcherOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)
		defer log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		agent, err := cfg.NewAgent(ctx)
		if err != nil {
			return fmt.Errorf("failed to create agent: %w", err)
		}

		return agent.Run(ctx)
	}
}
