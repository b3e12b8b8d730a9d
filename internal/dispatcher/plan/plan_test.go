package plan

import (
	"math"
	"testing"

	"github.com/roverlink-io/roverlink/internal/dispatcher/command"
	"github.com/roverlink-io/roverlink/internal/dispatcher/core"
)

func mag(v uint) command.Command {
	return command.Command{Magnitude: v, HasMagnitude: true}
}

func TestPlanTranslations(t *testing.T) {
	p := Planner{StepsPerDegree: 3.5}

	tests := []struct {
		name      string
		cmd       command.Command
		wantPol   core.Polarity
		wantSteps int32
	}{
		{"forward default", command.Command{Action: command.ActionForward}, core.PolarityForward, 3000},
		{"backward default", command.Command{Action: command.ActionBackward}, core.PolarityBackward, 3000},
		{"forward 45cm", func() command.Command { c := mag(45); c.Action = command.ActionForward; return c }(), core.PolarityForward, 4500},
		{"backward 1cm", func() command.Command { c := mag(1); c.Action = command.ActionBackward; return c }(), core.PolarityBackward, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Plan(tt.cmd)
			if !ok {
				t.Fatal("expected a plan, got no-op")
			}
			if got.Pivot {
				t.Error("translation must not be a pivot")
			}
			if got.Left != got.Right {
				t.Errorf("straight move must be symmetric, got left=%+v right=%+v", got.Left, got.Right)
			}
			if got.Left.Polarity != tt.wantPol || got.Left.Steps != tt.wantSteps {
				t.Errorf("got %+v, want polarity=%v steps=%d", got.Left, tt.wantPol, tt.wantSteps)
			}
		})
	}
}

func TestPlanTurns(t *testing.T) {
	p := Planner{StepsPerDegree: 3.5}

	tests := []struct {
		name      string
		cmd       command.Command
		wantLeft  core.Polarity
		wantRight core.Polarity
		wantSteps int32
	}{
		{"left default 90deg", command.Command{Action: command.ActionTurnLeft}, core.PolarityBackward, core.PolarityForward, 315},
		{"right default 90deg", command.Command{Action: command.ActionTurnRight}, core.PolarityForward, core.PolarityBackward, 315},
		{"right 45deg rounds", func() command.Command { c := mag(45); c.Action = command.ActionTurnRight; return c }(), core.PolarityForward, core.PolarityBackward, 158},
		{"left 1deg rounds", func() command.Command { c := mag(1); c.Action = command.ActionTurnLeft; return c }(), core.PolarityBackward, core.PolarityForward, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Plan(tt.cmd)
			if !ok {
				t.Fatal("expected a plan, got no-op")
			}
			if !got.Pivot {
				t.Error("turn must be a pivot")
			}
			if got.Left.Polarity != tt.wantLeft || got.Right.Polarity != tt.wantRight {
				t.Errorf("polarities = (%v, %v), want (%v, %v)",
					got.Left.Polarity, got.Right.Polarity, tt.wantLeft, tt.wantRight)
			}
			if got.Left.Steps != tt.wantSteps || got.Right.Steps != tt.wantSteps {
				t.Errorf("steps = (%d, %d), want %d on both",
					got.Left.Steps, got.Right.Steps, tt.wantSteps)
			}
		})
	}
}

func TestPlanClampsOversizedMagnitudes(t *testing.T) {
	p := Planner{StepsPerDegree: 3.5}

	tests := []struct {
		name      string
		action    command.Action
		magnitude uint
		wantSteps int32
	}{
		{"forward beyond boundary", command.ActionForward, 50_000_000, maxTranslateCm * StepsPerCm},
		{"forward at clamp boundary", command.ActionForward, maxTranslateCm, maxTranslateCm * StepsPerCm},
		{"forward below boundary", command.ActionForward, maxTranslateCm - 1, (maxTranslateCm - 1) * StepsPerCm},
		{"turn overflows float conversion", command.ActionTurnLeft, 1_000_000_000, math.MaxInt32},
		{"turn at int32 limit", command.ActionTurnRight, math.MaxUint32, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := mag(tt.magnitude)
			cmd.Action = tt.action

			got, ok := p.Plan(cmd)
			if !ok {
				t.Fatal("expected a plan, got no-op")
			}
			if got.Left.Steps <= 0 || got.Right.Steps <= 0 {
				t.Fatalf("step count went non-positive: left=%d right=%d", got.Left.Steps, got.Right.Steps)
			}
			if got.Left.Steps != tt.wantSteps || got.Right.Steps != tt.wantSteps {
				t.Errorf("steps = (%d, %d), want %d on both", got.Left.Steps, got.Right.Steps, tt.wantSteps)
			}
		})
	}
}

func TestPlanUnknownIsNoOp(t *testing.T) {
	p := Planner{StepsPerDegree: 3.5}

	for _, cmd := range []command.Command{
		{Action: command.ActionUnknown},
		{Action: command.ActionUnknown, Magnitude: 45, HasMagnitude: true},
	} {
		if _, ok := p.Plan(cmd); ok {
			t.Errorf("Plan(%+v) produced a plan, want no-op", cmd)
		}
	}
}
