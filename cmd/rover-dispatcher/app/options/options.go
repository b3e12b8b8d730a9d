// Package options aggregates the dispatcher's flag groups.
package options

import (
	"github.com/spf13/pflag"

	"github.com/roverlink-io/roverlink/internal/dispatcher"
	"github.com/roverlink-io/roverlink/pkg/app"
	"github.com/roverlink-io/roverlink/pkg/log"
	"github.com/roverlink-io/roverlink/pkg/options"
)

var _ app.CliOptions = (*DispatcherOptions)(nil)

// DispatcherOptions holds all configuration for the rover-dispatcher.
type DispatcherOptions struct {
	QueueOptions *options.QueueOptions `json:"queue" mapstructure:"queue"`
	SqsOptions   *options.SqsOptions   `json:"sqs" mapstructure:"sqs"`
	MqttOptions  *options.MqttOptions  `json:"mqtt" mapstructure:"mqtt"`
	Ev3Options   *options.Ev3Options   `json:"ev3" mapstructure:"ev3"`
	HttpOptions  *options.HttpOptions  `json:"http" mapstructure:"http"`
	Log          *log.Options          `json:"log" mapstructure:"log"`
}

// NewDispatcherOptions creates a DispatcherOptions with default parameters.
func NewDispatcherOptions() *DispatcherOptions {
	return &DispatcherOptions{
		QueueOptions: options.NewQueueOptions(),
		SqsOptions:   options.NewSqsOptions(),
		MqttOptions:  options.NewMqttOptions(),
		Ev3Options:   options.NewEv3Options(),
		HttpOptions:  options.NewHttpOptions(),
		Log:          log.NewOptions(),
	}
}

// AddFlags adds all dispatcher flags to the given FlagSet.
func (o *DispatcherOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	o.QueueOptions.AddFlags(fs)
	o.SqsOptions.AddFlags(fs)
	o.MqttOptions.AddFlags(fs)
	o.Ev3Options.AddFlags(fs)
	o.HttpOptions.AddFlags(fs)
	o.Log.AddFlags(fs)
}

// Validate checks all option groups.
func (o *DispatcherOptions) Validate() []error {
	errs := []error{}
	errs = append(errs, o.QueueOptions.Validate()...)
	errs = append(errs, o.Ev3Options.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)

	// Only the active backend's options are validated.
	switch o.QueueOptions.Backend {
	case options.QueueBackendSqs:
		errs = append(errs, o.SqsOptions.Validate()...)
	case options.QueueBackendMqtt:
		errs = append(errs, o.MqttOptions.Validate()...)
	}

	return errs
}

// Config builds the dispatcher runtime configuration from the options.
func (o *DispatcherOptions) Config() (*dispatcher.Config, error) {
	return &dispatcher.Config{
		QueueOptions: o.QueueOptions,
		SqsOptions:   o.SqsOptions,
		MqttOptions:  o.MqttOptions,
		Ev3Options:   o.Ev3Options,
		HttpOptions:  o.HttpOptions,
	}, nil
}
