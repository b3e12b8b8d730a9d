// Package paths defines the topic layout of the rover MQTT contract.
// These constants are the routing contract between operators publishing
// commands and the dispatcher consuming them.
package paths

// DefaultRoot is the topic prefix all rover topics live under.
const DefaultRoot = "rover/v1"

// Downstream: operator -> rover.
const (
	// Command is the topic segment drive commands arrive on.
	// Pattern: {root}/command
	Command = "command"
)

// Upstream: rover -> operator.
const (
	// Status is the topic segment for the dispatcher's online status.
	// Payload: { "online": true/false }
	// The broker publishes the offline payload as the connection's will.
	// Pattern: {root}/status
	Status = "status"
)

// Join builds a full topic from the root and a segment.
func Join(root, segment string) string {
	return root + "/" + segment
}
