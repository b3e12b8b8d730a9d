// Package plan resolves validated commands into device-ready actuation plans.
package plan

import (
	"math"

	"github.com/roverlink-io/roverlink/internal/dispatcher/command"
	"github.com/roverlink-io/roverlink/internal/dispatcher/core"
)

// Conversion constants. Distance-to-step multiplication is exact integer
// math; only the degree conversion rounds.
const (
	DefaultDistanceCm  = 30
	DefaultTurnDegrees = 90
	StepsPerCm         = 100
)

// maxTranslateCm is the largest distance whose step count still fits the
// int32 the wire protocol carries. Larger magnitudes clamp to it.
const maxTranslateCm = math.MaxInt32 / StepsPerCm

// MotorPlan is the resolved instruction for one motor.
type MotorPlan struct {
	Polarity core.Polarity
	Steps    int32
}

// Plan is the fully resolved instruction set for one command. It always
// specifies both motors. Pivot marks an in-place turn, which uses
// power-stepped motion instead of speed-stepped motion.
type Plan struct {
	Left  MotorPlan
	Right MotorPlan
	Pivot bool
}

// Planner maps commands to plans. StepsPerDegree is externally configured
// because it depends on the rover's physical geometry.
type Planner struct {
	StepsPerDegree float64
}

// Plan resolves cmd into an actuation plan. ok is false for a no-op: the
// caller must not contact the actuator at all.
func (p Planner) Plan(cmd command.Command) (Plan, bool) {
	switch cmd.Action {
	case command.ActionForward:
		return p.translate(cmd, core.PolarityForward), true
	case command.ActionBackward:
		return p.translate(cmd, core.PolarityBackward), true
	case command.ActionTurnLeft:
		return p.pivot(cmd, core.PolarityBackward, core.PolarityForward), true
	case command.ActionTurnRight:
		return p.pivot(cmd, core.PolarityForward, core.PolarityBackward), true
	default:
		return Plan{}, false
	}
}

// translate is a straight-line move: identical polarity and step count on
// both sides. The magnitude is untrusted, so it is clamped before scaling.
func (p Planner) translate(cmd command.Command, dir core.Polarity) Plan {
	cm := cmd.MagnitudeOr(DefaultDistanceCm)
	if cm > maxTranslateCm {
		cm = maxTranslateCm
	}
	steps := int32(cm) * StepsPerCm
	return Plan{
		Left:  MotorPlan{Polarity: dir, Steps: steps},
		Right: MotorPlan{Polarity: dir, Steps: steps},
	}
}

// pivot is an in-place turn: opposite polarities, equal step counts, degree
// count rounded to the nearest step since the factor is typically fractional.
func (p Planner) pivot(cmd command.Command, left, right core.Polarity) Plan {
	deg := cmd.MagnitudeOr(DefaultTurnDegrees)
	raw := math.Round(float64(deg) * p.StepsPerDegree)
	if raw > math.MaxInt32 {
		raw = math.MaxInt32
	}
	steps := int32(raw)
	return Plan{
		Left:  MotorPlan{Polarity: left, Steps: steps},
		Right: MotorPlan{Polarity: right, Steps: steps},
		Pivot: true,
	}
}
