package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*Ev3Options)(nil)

// Ev3Options contains configuration for the EV3 brick connection and for the
// motion constants that depend on the physical build of the rover.
type Ev3Options struct {
	// Port is the serial port the brick is paired on.
	Port string `json:"port" mapstructure:"port"`

	// BaudRate for the serial connection.
	BaudRate int `json:"baud-rate" mapstructure:"baud-rate"`

	// StepsPerDegree converts a turn angle in degrees into motor steps.
	// The factor depends on wheel diameter and track width, so it is
	// configurable rather than hardcoded.
	StepsPerDegree float64 `json:"steps-per-degree" mapstructure:"steps-per-degree"`

	// TelemetryInterval is how often the brick is polled for battery and
	// tacho telemetry. Zero disables the telemetry monitor.
	TelemetryInterval time.Duration `json:"telemetry-interval" mapstructure:"telemetry-interval"`
}

// NewEv3Options creates an Ev3Options object with default parameters.
func NewEv3Options() *Ev3Options {
	return &Ev3Options{
		Port:              "COM3",
		BaudRate:          115200,
		StepsPerDegree:    3.5,
		TelemetryInterval: time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *Ev3Options) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if o.Port == "" {
		errors = append(errors, fmt.Errorf("ev3 serial port is required"))
	}
	if o.BaudRate <= 0 {
		errors = append(errors, fmt.Errorf("ev3 baud rate must be positive, got %d", o.BaudRate))
	}
	if o.StepsPerDegree <= 0 {
		errors = append(errors, fmt.Errorf("steps-per-degree must be positive, got %v", o.StepsPerDegree))
	}

	return errors
}

// AddFlags adds flags for Ev3Options to the specified FlagSet.
func (o *Ev3Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Port, "ev3.port", o.Port, "Serial port the EV3 brick is paired on.")
	fs.IntVar(&o.BaudRate, "ev3.baud-rate", o.BaudRate, "Baud rate for the serial connection.")
	fs.Float64Var(&o.StepsPerDegree, "ev3.steps-per-degree", o.StepsPerDegree, "Motor steps per degree of in-place rotation.")
	fs.DurationVar(&o.TelemetryInterval, "ev3.telemetry-interval", o.TelemetryInterval, "Interval between brick telemetry polls (0 disables).")
}
