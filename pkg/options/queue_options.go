package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Queue backend identifiers.
const (
	QueueBackendSqs  = "sqs"
	QueueBackendMqtt = "mqtt"
)

var _ IOptions = (*QueueOptions)(nil)

// QueueOptions selects the command queue backend and holds transport-agnostic
// polling behavior.
type QueueOptions struct {
	// Backend is the queue transport to use, "sqs" or "mqtt".
	// Exactly one backend is active; the dispatcher never consumes two
	// command streams at once.
	Backend string `json:"backend" mapstructure:"backend"`

	// PollBudget bounds every queue round trip (receive and delete each
	// get their own budget).
	PollBudget time.Duration `json:"poll-budget" mapstructure:"poll-budget"`
}

// NewQueueOptions creates a QueueOptions object with default parameters.
func NewQueueOptions() *QueueOptions {
	return &QueueOptions{
		Backend:    QueueBackendSqs,
		PollBudget: 125 * time.Millisecond,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *QueueOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	switch o.Backend {
	case QueueBackendSqs, QueueBackendMqtt:
	default:
		errors = append(errors, fmt.Errorf("unknown queue backend %q", o.Backend))
	}
	if o.PollBudget <= 0 {
		errors = append(errors, fmt.Errorf("poll budget must be positive, got %v", o.PollBudget))
	}

	return errors
}

// AddFlags adds flags for QueueOptions to the specified FlagSet.
func (o *QueueOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Backend, "queue.backend", o.Backend, "Command queue backend ('sqs' or 'mqtt').")
	fs.DurationVar(&o.PollBudget, "queue.poll-budget", o.PollBudget, "Time budget for each queue round trip.")
}
