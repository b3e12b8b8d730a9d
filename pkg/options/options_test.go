package options

import (
	"testing"
	"time"
)

func TestQueueOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*QueueOptions)
		wantErrs int
	}{
		{"defaults are valid", func(o *QueueOptions) {}, 0},
		{"mqtt backend is valid", func(o *QueueOptions) { o.Backend = QueueBackendMqtt }, 0},
		{"unknown backend", func(o *QueueOptions) { o.Backend = "kafka" }, 1},
		{"zero poll budget", func(o *QueueOptions) { o.PollBudget = 0 }, 1},
		{"negative poll budget", func(o *QueueOptions) { o.PollBudget = -time.Second }, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewQueueOptions()
			tt.mutate(o)
			if got := len(o.Validate()); got != tt.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d", got, tt.wantErrs)
			}
		})
	}
}

func TestEv3OptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Ev3Options)
		wantErrs int
	}{
		{"defaults are valid", func(o *Ev3Options) {}, 0},
		{"empty port", func(o *Ev3Options) { o.Port = "" }, 1},
		{"zero baud rate", func(o *Ev3Options) { o.BaudRate = 0 }, 1},
		{"negative steps per degree", func(o *Ev3Options) { o.StepsPerDegree = -3.5 }, 1},
		{"everything wrong", func(o *Ev3Options) { o.Port = ""; o.BaudRate = -1; o.StepsPerDegree = 0 }, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewEv3Options()
			tt.mutate(o)
			if got := len(o.Validate()); got != tt.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d", got, tt.wantErrs)
			}
		})
	}
}

func TestHttpOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		wantErrs int
	}{
		{"default address", "0.0.0.0:9090", 0},
		{"empty disables the server", "", 0},
		{"missing port", "0.0.0.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewHttpOptions()
			o.Addr = tt.addr
			if got := len(o.Validate()); got != tt.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d", got, tt.wantErrs)
			}
		})
	}
}

func TestSqsOptionsValidate(t *testing.T) {
	o := NewSqsOptions()
	if errs := o.Validate(); len(errs) != 0 {
		t.Errorf("default options invalid: %v", errs)
	}

	o.Region = ""
	if errs := o.Validate(); len(errs) != 1 {
		t.Errorf("empty region: got %d errors, want 1", len(errs))
	}
}

func TestMqttOptionsValidate(t *testing.T) {
	o := NewMqttOptions()
	if errs := o.Validate(); len(errs) != 0 {
		t.Errorf("default options invalid: %v", errs)
	}

	o.CommandTopic = ""
	if errs := o.Validate(); len(errs) != 1 {
		t.Errorf("empty command topic: got %d errors, want 1", len(errs))
	}
}
