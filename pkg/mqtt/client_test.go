package mqtt

import (
	"testing"
)

func TestTopicsMatch(t *testing.T) {
	tests := []struct {
		filter string
		topic  string
		want   bool
	}{
		{"rover/v1/command", "rover/v1/command", true},
		{"rover/v1/command", "rover/v1/status", false},
		{"rover/+/command", "rover/v1/command", true},
		{"rover/+/command", "rover/v1/v2/command", false},
		{"rover/#", "rover/v1/command", true},
		{"rover/#", "fleet/v1/command", false},
		{"rover/+", "rover", false},
		{"#", "anything/at/all", true},
	}

	for _, tt := range tests {
		if got := topicsMatch(tt.filter, tt.topic); got != tt.want {
			t.Errorf("topicsMatch(%q, %q) = %v, want %v", tt.filter, tt.topic, got, tt.want)
		}
	}
}

func TestClientConfigValidate(t *testing.T) {
	cfg := &ClientConfig{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty broker url")
	}

	cfg.BrokerURL = "tcp://localhost:1883"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
