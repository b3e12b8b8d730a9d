package dispatcher

import (
	"context"
	"fmt"

	"github.com/roverlink-io/roverlink/internal/diag"
	"github.com/roverlink-io/roverlink/internal/dispatcher/plan"
	"github.com/roverlink-io/roverlink/internal/ev3"
	"github.com/roverlink-io/roverlink/pkg/mqtt"
	"github.com/roverlink-io/roverlink/pkg/options"
	"github.com/roverlink-io/roverlink/pkg/queue"
	"github.com/roverlink-io/roverlink/pkg/queue/mqttq"
	"github.com/roverlink-io/roverlink/pkg/queue/sqsq"
)

// Config carries the option groups needed to assemble the agent. All values
// are read once at startup and immutable afterwards.
type Config struct {
	QueueOptions *options.QueueOptions
	SqsOptions   *options.SqsOptions
	MqttOptions  *options.MqttOptions
	Ev3Options   *options.Ev3Options
	HttpOptions  *options.HttpOptions
}

// NewAgent connects the brick and builds the whole pipeline. A missing
// device is fatal: without an actuator there is nothing to dispatch to.
func (cfg *Config) NewAgent(ctx context.Context) (*Agent, error) {
	brick, err := ev3.Open(cfg.Ev3Options)
	if err != nil {
		return nil, err
	}

	q, mq, err := cfg.newQueue(ctx)
	if err != nil {
		_ = brick.Close()
		return nil, err
	}

	loop := NewLoop(
		NewPoller(q, cfg.QueueOptions.PollBudget),
		plan.Planner{StepsPerDegree: cfg.Ev3Options.StepsPerDegree},
		brick,
	)

	agent := &Agent{
		loop:      loop,
		gateway:   brick,
		mqttQueue: mq,
	}

	if cfg.Ev3Options.TelemetryInterval > 0 {
		agent.monitor = ev3.NewMonitor(brick, cfg.Ev3Options.TelemetryInterval)
	}

	if cfg.HttpOptions != nil && cfg.HttpOptions.Addr != "" {
		agent.diag = diag.New(cfg.HttpOptions, agent.status)
	}

	return agent, nil
}

// newQueue builds the configured queue backend. The second return value is
// non-nil only for the mqtt backend, which needs a start/stop lifecycle.
func (cfg *Config) newQueue(ctx context.Context) (queue.Queue, *mqttq.Queue, error) {
	switch cfg.QueueOptions.Backend {
	case options.QueueBackendSqs:
		q, err := sqsq.New(ctx, cfg.SqsOptions)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init sqs queue: %w", err)
		}
		return q, nil, nil

	case options.QueueBackendMqtt:
		cc := cfg.MqttOptions.ToClientConfig()
		if cc.ClientID == "" {
			cc.ClientID = "rover-dispatcher"
		}
		if cfg.MqttOptions.StatusTopic != "" {
			cc.WillTopic = cfg.MqttOptions.StatusTopic
			cc.WillPayload = []byte(`{"online":false}`)
			cc.WillQoS = 1
			cc.WillRetain = true
		}

		client, err := mqtt.NewClient(cc)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init mqtt client: %w", err)
		}

		mq := mqttq.New(client, cfg.MqttOptions.CommandTopic, cfg.MqttOptions.StatusTopic, 16)
		return mq, mq, nil

	default:
		return nil, nil, fmt.Errorf("unknown queue backend %q", cfg.QueueOptions.Backend)
	}
}
