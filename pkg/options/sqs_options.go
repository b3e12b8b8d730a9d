package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

var _ IOptions = (*SqsOptions)(nil)

// SqsOptions contains configuration for the AWS SQS command queue.
//
// Credentials are deliberately not flags: they are read from the
// AWS_ACCESS_KEY / AWS_SECRET_KEY environment variables, falling back to the
// SDK default chain when unset.
type SqsOptions struct {
	// QueueURL is the full URL of the queue commands are received on.
	QueueURL string `json:"queue-url" mapstructure:"queue-url"`

	// Region is the AWS region the queue lives in.
	Region string `json:"region" mapstructure:"region"`
}

// NewSqsOptions creates a SqsOptions object with default parameters.
func NewSqsOptions() *SqsOptions {
	return &SqsOptions{
		Region: "us-east-1",
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *SqsOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if o.Region == "" {
		errors = append(errors, fmt.Errorf("sqs region is required"))
	}

	return errors
}

// AddFlags adds flags for SqsOptions to the specified FlagSet.
func (o *SqsOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.QueueURL, "sqs.queue-url", o.QueueURL, "URL of the SQS queue commands are received on.")
	fs.StringVar(&o.Region, "sqs.region", o.Region, "AWS region of the command queue.")
}
