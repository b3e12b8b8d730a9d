package dispatcher

import (
	"context"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/roverlink-io/roverlink/internal/dispatcher/command"
	"github.com/roverlink-io/roverlink/internal/dispatcher/core"
	"github.com/roverlink-io/roverlink/internal/dispatcher/plan"
	"github.com/roverlink-io/roverlink/internal/pkg/metrics"
	"github.com/roverlink-io/roverlink/pkg/log"
)

// Loop states and events. The loop is Idle when no command is in flight and
// Executing between batch dispatch and device acknowledgment.
const (
	StateIdle      = "idle"
	StateExecuting = "executing"

	eventDispatch = "dispatch"
	eventAck      = "ack"
)

// Motion constants for batch execution. Translations use regulated speed,
// pivots use raw power for more predictable in-place turns on smooth floors.
const (
	driveSpeed int8 = 50
	turnPower  int8 = 30
)

// Status is a snapshot of the loop for diagnostics.
type Status struct {
	State      string    `json:"state"`
	LastAction string    `json:"lastAction,omitempty"`
	LastDevice string    `json:"lastDevice,omitempty"`
	LastOption string    `json:"lastOption,omitempty"`
	LastSeen   time.Time `json:"lastSeen,omitzero"`
	Dispatched uint64    `json:"dispatched"`
}

// Loop is the top-level control loop: poll, decode, plan, execute, repeat.
// One command is fully completed, including actuator acknowledgment, before
// the next poll begins.
type Loop struct {
	poller  *Poller
	planner plan.Planner
	gateway core.Gateway

	machine *fsm.FSM

	mu         sync.Mutex
	lastCmd    command.Command
	lastSeen   time.Time
	dispatched uint64
}

// NewLoop wires the pipeline stages together.
func NewLoop(poller *Poller, planner plan.Planner, gateway core.Gateway) *Loop {
	l := &Loop{
		poller:  poller,
		planner: planner,
		gateway: gateway,
	}

	l.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventDispatch, Src: []string{StateIdle}, Dst: StateExecuting},
			{Name: eventAck, Src: []string{StateExecuting}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_executing": func(ctx context.Context, e *fsm.Event) {
				log.Debug("Command in flight, polling suspended")
			},
		},
	)

	return l
}

// Run drives the loop until ctx is canceled. A bad message never terminates
// the loop; only cancellation does.
func (l *Loop) Run(ctx context.Context) error {
	log.Info("Dispatch loop started")

	for {
		if err := ctx.Err(); err != nil {
			log.Info("Dispatch loop stopping")
			return err
		}

		body, ok := l.poller.Poll(ctx)
		if !ok {
			continue
		}

		cmd := command.Decode(body)
		l.note(cmd)
		metrics.CommandsTotal.WithLabelValues(cmd.Action.String()).Inc()

		p, ok := l.planner.Plan(cmd)
		if !ok {
			log.Info("Ignoring command with no actionable intent",
				"device", cmd.Device, "option", cmd.Option)
			continue
		}

		log.Info("Executing command",
			"action", cmd.Action, "leftSteps", p.Left.Steps, "rightSteps", p.Right.Steps)

		if err := l.execute(ctx, p); err != nil {
			log.Error(err, "Batch execution failed", "action", cmd.Action)
		}
	}
}

// execute issues one plan as exactly one batch and waits for the device to
// acknowledge dispatch before the loop polls again.
func (l *Loop) execute(ctx context.Context, p plan.Plan) error {
	if err := l.machine.Event(ctx, eventDispatch); err != nil {
		return err
	}
	defer func() {
		_ = l.machine.Event(ctx, eventAck)
	}()

	b := l.gateway.NewBatch()
	b.SetPolarity(core.MotorLeft, p.Left.Polarity)
	b.SetPolarity(core.MotorRight, p.Right.Polarity)

	if p.Pivot {
		b.StepAtPower(core.MotorLeft, turnPower, p.Left.Steps)
		b.StepAtPower(core.MotorRight, turnPower, p.Right.Steps)
	} else {
		b.StepAtSpeed(core.MotorLeft, driveSpeed, p.Left.Steps)
		b.StepAtSpeed(core.MotorRight, driveSpeed, p.Right.Steps)
	}

	timer := prometheus.NewTimer(metrics.BatchLatency)
	defer timer.ObserveDuration()

	if err := b.Send(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	l.dispatched++
	l.mu.Unlock()

	return nil
}

func (l *Loop) note(cmd command.Command) {
	l.mu.Lock()
	l.lastCmd = cmd
	l.lastSeen = time.Now()
	l.mu.Unlock()
}

// Status reports the loop state for the diagnostics endpoint.
func (l *Loop) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := Status{
		State:      l.machine.Current(),
		LastSeen:   l.lastSeen,
		Dispatched: l.dispatched,
	}
	if !l.lastSeen.IsZero() {
		st.LastAction = l.lastCmd.Action.String()
		st.LastDevice = l.lastCmd.Device
		st.LastOption = l.lastCmd.Option
	}
	return st
}
