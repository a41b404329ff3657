// Package relay forwards hub events to the MQTT broker.
//
// The relay is an observer: each hub event becomes one JSON message on
// hearth/event/{event_name}. Delivery is best effort; a broker outage is
// logged and the event dropped, never surfaced to the command that
// produced it.
package relay

import (
	"encoding/json"
	"time"

	"github.com/rgeddes/hearth-core/internal/infrastructure/mqtt"
)

// Publisher is the slice of the MQTT client the relay needs.
// Satisfied by *mqtt.Client.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Logger defines the logging interface used by the Relay.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Envelope is the wire shape of one relayed event.
type Envelope struct {
	Event     string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	Timestamp string         `json:"ts"`
}

// Relay publishes each hub event to the broker. Implements the hub
// Observer contract.
//
// Notify runs synchronously inside the hub's event fan-out; the underlying
// publish is bounded by the MQTT client's own timeout, and failures are
// logged and swallowed.
type Relay struct {
	pub    Publisher
	qos    byte
	logger Logger
}

// New creates an event relay publishing at the given QoS.
func New(pub Publisher, qos byte) *Relay {
	return &Relay{
		pub:    pub,
		qos:    qos,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the relay.
func (r *Relay) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.logger = logger
}

// Notify publishes one hub event. Implements the hub Observer contract.
func (r *Relay) Notify(event string, payload map[string]any) {
	env := Envelope{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(env)
	if err != nil {
		// Payload values come from the hub and are plain ints/strings;
		// a marshal failure here means a programming error upstream.
		r.logger.Error("event relay marshal failed", "event", event, "error", err)
		return
	}

	topic := mqtt.Topics{}.Event(event)
	if err := r.pub.Publish(topic, data, r.qos, false); err != nil {
		r.logger.Warn("event relay publish failed", "topic", topic, "error", err)
		return
	}
	r.logger.Debug("event relayed", "topic", topic)
}
