// Package dispatcher implements the command intake-and-dispatch pipeline:
// poll the queue, decode the payload, resolve an actuation plan and issue it
// to the brick as one batch, strictly one command at a time.
package dispatcher

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roverlink-io/roverlink/internal/diag"
	"github.com/roverlink-io/roverlink/internal/dispatcher/core"
	"github.com/roverlink-io/roverlink/internal/ev3"
	"github.com/roverlink-io/roverlink/pkg/log"
	"github.com/roverlink-io/roverlink/pkg/queue/mqttq"
)

// Agent ties the dispatch loop to its supporting services: the optional
// telemetry monitor and diagnostics server, and the queue lifecycle.
type Agent struct {
	loop    *Loop
	gateway core.Gateway

	mqttQueue *mqttq.Queue
	monitor   *ev3.Monitor
	diag      *diag.Server
}

// Run starts the agent and blocks until ctx is canceled or a fatal error
// occurs. The dispatch loop itself never returns on bad input.
func (a *Agent) Run(ctx context.Context) error {
	log.Info("Starting rover-dispatcher")

	if a.mqttQueue != nil {
		if err := a.mqttQueue.Start(ctx); err != nil {
			_ = a.gateway.Close()
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.loop.Run(gctx)
	})

	if a.monitor != nil {
		g.Go(func() error {
			a.monitor.Run(gctx)
			return nil
		})
	}

	if a.diag != nil {
		g.Go(func() error {
			return a.diag.Run(gctx)
		})
	}

	err := g.Wait()

	a.shutdown()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *Agent) shutdown() {
	log.Info("Agent shutting down...")

	if a.mqttQueue != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		a.mqttQueue.Stop(ctx)
		cancel()
	}

	if err := a.gateway.Close(); err != nil {
		log.Warn("Failed to close device connection", err)
	}
}

// status is the document served on the diagnostics /status endpoint.
func (a *Agent) status() any {
	doc := struct {
		Loop      Status        `json:"loop"`
		Telemetry *ev3.Snapshot `json:"telemetry,omitempty"`
	}{
		Loop: a.loop.Status(),
	}

	if a.monitor != nil {
		if snap, ok := a.monitor.Snapshot(); ok {
			doc.Telemetry = &snap
		}
	}

	return doc
}
