// Package command turns untrusted queue payloads into validated commands.
package command

// Action is the recognized intent of a remote command.
type Action int

const (
	ActionUnknown Action = iota
	ActionForward
	ActionBackward
	ActionTurnLeft
	ActionTurnRight
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionTurnLeft:
		return "left"
	case ActionTurnRight:
		return "right"
	default:
		return "unknown"
	}
}

// Command is the validated internal representation of an intent. It is
// immutable once constructed and carries no device handle.
type Command struct {
	Action Action

	// Magnitude is centimeters for translations and degrees for turns.
	// Only meaningful when HasMagnitude is set; otherwise the action's
	// default applies.
	Magnitude    uint
	HasMagnitude bool

	// Device and Option are accepted for forward compatibility but do not
	// affect behavior; they are kept for diagnostic echo only.
	Device string
	Option string
}

// MagnitudeOr returns the command's magnitude, or def when none was given.
func (c Command) MagnitudeOr(def uint) uint {
	if c.HasMagnitude {
		return c.Magnitude
	}
	return def
}
