package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGlobalLoggerForwarders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	opts := NewOptions()
	opts.Level = "debug"
	opts.Format = "json"
	opts.EnableColor = false
	opts.DisableCaller = true
	opts.OutputPaths = []string{path}

	Init(opts)
	if Std() == nil {
		t.Fatal("Std returned nil after Init")
	}

	WithName("dispatcher").Info("loop started")
	WithValues("port", "COM3").Debug("brick connected")
	Logr().Info("telemetry ready", "interval", "1s")
	Info("polling", "budget", "125ms")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`"logger":"dispatcher"`,
		"loop started",
		`"port":"COM3"`,
		"brick connected",
		"telemetry ready",
		`"budget":"125ms"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewNopLoggerDiscards(t *testing.T) {
	nop := NewNopLogger()
	nop.Info("dropped")
	nop.Error(nil, "also dropped")

	if nop.WithName("x") == nil || nop.WithValues("k", "v") == nil {
		t.Error("derived nop loggers must not be nil")
	}
}
