package dispatcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/roverlink-io/roverlink/internal/dispatcher/core"
	"github.com/roverlink-io/roverlink/internal/dispatcher/plan"
	"github.com/roverlink-io/roverlink/pkg/queue"
)

// scriptedQueue hands out a fixed list of bodies, then cancels the loop.
type scriptedQueue struct {
	bodies []string
	cancel context.CancelFunc
}

func (q *scriptedQueue) ReceiveOne(ctx context.Context) (*queue.Message, error) {
	if len(q.bodies) == 0 {
		q.cancel()
		return nil, nil
	}
	body := q.bodies[0]
	q.bodies = q.bodies[1:]
	return &queue.Message{Body: body, Receipt: "r"}, nil
}

func (q *scriptedQueue) Delete(ctx context.Context, receipt string) error {
	return nil
}

type recordedBatch struct {
	gw       *fakeGateway
	speeds   []int8
	powers   []int8
	steps    []int32
	polCalls int
	sendErr  error
}

func (b *recordedBatch) SetPolarity(m core.Motor, p core.Polarity) {
	b.polCalls++
}

func (b *recordedBatch) StepAtSpeed(m core.Motor, speed int8, steps int32) {
	b.speeds = append(b.speeds, speed)
	b.steps = append(b.steps, steps)
}

func (b *recordedBatch) StepAtPower(m core.Motor, power int8, steps int32) {
	b.powers = append(b.powers, power)
	b.steps = append(b.steps, steps)
}

func (b *recordedBatch) Send(ctx context.Context) error {
	b.gw.mu.Lock()
	b.gw.sent = append(b.gw.sent, b)
	b.gw.mu.Unlock()
	return b.sendErr
}

type fakeGateway struct {
	mu      sync.Mutex
	created int
	sent    []*recordedBatch
	sendErr error
}

func (g *fakeGateway) NewBatch() core.Batch {
	g.mu.Lock()
	g.created++
	g.mu.Unlock()
	return &recordedBatch{gw: g, sendErr: g.sendErr}
}

func (g *fakeGateway) Close() error { return nil }

func sqsBody(inner string) string {
	return `{"Message":"` + inner + `"}`
}

func runLoop(t *testing.T, bodies []string, gw *fakeGateway) {
	t.Helper()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	q := &scriptedQueue{bodies: bodies, cancel: cancel}
	l := NewLoop(NewPoller(q, 50*time.Millisecond), plan.Planner{StepsPerDegree: 3.5}, gw)

	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}

func TestLoopDispatchesEachCommandAsOneBatch(t *testing.T) {
	gw := &fakeGateway{}
	runLoop(t, []string{
		sqsBody(`{\"action\":\"forward\"}`),
		sqsBody(`{\"action\":\"left\"}`),
		sqsBody(`{\"action\":\"backward\",\"value\":\"10\"}`),
	}, gw)

	if gw.created != 3 || len(gw.sent) != 3 {
		t.Fatalf("created %d batches, sent %d, want 3 and 3", gw.created, len(gw.sent))
	}

	for i, b := range gw.sent {
		if b.polCalls != 2 {
			t.Errorf("batch %d: %d polarity calls, want 2", i, b.polCalls)
		}
	}

	// forward: both motors at drive speed, default distance.
	fwd := gw.sent[0]
	if len(fwd.speeds) != 2 || fwd.speeds[0] != driveSpeed {
		t.Errorf("forward speeds = %v, want two at %d", fwd.speeds, driveSpeed)
	}
	if fwd.steps[0] != 3000 || fwd.steps[1] != 3000 {
		t.Errorf("forward steps = %v, want 3000 each", fwd.steps)
	}

	// left: pivot at turn power, default 90 degrees.
	turn := gw.sent[1]
	if len(turn.powers) != 2 || turn.powers[0] != turnPower {
		t.Errorf("turn powers = %v, want two at %d", turn.powers, turnPower)
	}
	if turn.steps[0] != 315 {
		t.Errorf("turn steps = %v, want 315", turn.steps)
	}

	// backward 10cm.
	back := gw.sent[2]
	if back.steps[0] != 1000 {
		t.Errorf("backward steps = %v, want 1000", back.steps)
	}
}

func TestLoopIgnoresUnknownCommands(t *testing.T) {
	gw := &fakeGateway{}
	runLoop(t, []string{
		sqsBody(`{\"action\":\"dance\"}`),
		"not json at all",
		sqsBody(`{}`),
	}, gw)

	if gw.created != 0 {
		t.Fatalf("created %d batches for unknown commands, want 0", gw.created)
	}
}

func TestLoopSurvivesSendFailure(t *testing.T) {
	gw := &fakeGateway{sendErr: errors.New("wire broke")}
	runLoop(t, []string{
		sqsBody(`{\"action\":\"forward\"}`),
		sqsBody(`{\"action\":\"forward\"}`),
	}, gw)

	// Both commands were attempted and the loop returned to idle each time.
	if gw.created != 2 {
		t.Fatalf("created %d batches, want 2", gw.created)
	}
	if got := gw.sent[len(gw.sent)-1]; got == nil {
		t.Fatal("missing final batch")
	}

	l := NewLoop(NewPoller(newFakeQueue(), 50*time.Millisecond), plan.Planner{StepsPerDegree: 3.5}, gw)
	if got := l.Status().State; got != StateIdle {
		t.Errorf("fresh loop state = %q, want %q", got, StateIdle)
	}
}

func TestLoopStatusTracksLastCommand(t *testing.T) {
	gw := &fakeGateway{}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	q := &scriptedQueue{
		bodies: []string{sqsBody(`{\"device\":\"motor\",\"action\":\"right\",\"option\":\"turn\"}`)},
		cancel: cancel,
	}
	l := NewLoop(NewPoller(q, 50*time.Millisecond), plan.Planner{StepsPerDegree: 3.5}, gw)

	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v", err)
	}

	st := l.Status()
	if st.State != StateIdle {
		t.Errorf("state = %q, want %q", st.State, StateIdle)
	}
	if st.LastAction != "right" || st.LastDevice != "motor" || st.LastOption != "turn" {
		t.Errorf("last command = %s/%s/%s", st.LastAction, st.LastDevice, st.LastOption)
	}
	if st.Dispatched != 1 {
		t.Errorf("dispatched = %d, want 1", st.Dispatched)
	}
	if st.LastSeen.IsZero() {
		t.Error("lastSeen not recorded")
	}
}
