package command

import (
	"encoding/json"
	"strconv"

	"github.com/roverlink-io/roverlink/pkg/log"
)

// envelope is the outer wire structure: the Message field holds the inner
// payload as a serialized string.
type envelope struct {
	Message string `json:"Message"`
}

// payload is the inner wire structure. All fields are optional strings; a
// missing field and a wrong-typed field are treated identically.
type payload struct {
	Device string `json:"device"`
	Action string `json:"action"`
	Option string `json:"option"`
	Value  string `json:"value"`
}

// Decode parses a raw queue body into a Command. It is best-effort and never
// fails: anything unparseable degrades to ActionUnknown so the dispatch loop
// keeps running on bad input. Decoding is pure; the same body always yields
// the same Command.
func Decode(raw string) Command {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		log.Debug("Unparseable command envelope", "body", raw, err)
		return Command{}
	}

	var p payload
	if err := json.Unmarshal([]byte(env.Message), &p); err != nil {
		log.Debug("Unparseable command payload", "message", env.Message, err)
		return Command{}
	}

	cmd := Command{
		Action: parseAction(p.Action),
		Device: p.Device,
		Option: p.Option,
	}

	// A value that does not parse as a non-negative integer is treated as
	// absent, not as an error.
	if p.Value != "" {
		if v, err := strconv.ParseUint(p.Value, 10, strconv.IntSize-1); err == nil {
			cmd.Magnitude = uint(v)
			cmd.HasMagnitude = true
		}
	}

	return cmd
}

// parseAction matches the fixed, case-sensitive command vocabulary.
func parseAction(s string) Action {
	switch s {
	case "forward":
		return ActionForward
	case "backward":
		return ActionBackward
	case "left":
		return ActionTurnLeft
	case "right":
		return ActionTurnRight
	default:
		return ActionUnknown
	}
}
