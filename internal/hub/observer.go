package hub

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Observer receives every event the hub emits, in emission order.
//
// Notify is called synchronously while the hub holds its internal lock, so
// implementations must return promptly, bound any slow I/O with their own
// timeouts, and must never call back into the Hub. An observer that needs
// hub state should capture what it needs from the payload instead.
type Observer interface {
	Notify(event string, payload map[string]any)
}

// ConsoleObserver writes each event as a single human-readable line.
//
// The line format is fixed:
//
//	[EVENT] device_added: map[id:1 type:light]
//
// Payload rendering relies on fmt printing map keys in sorted order, so the
// output is deterministic and safe to assert on.
type ConsoleObserver struct {
	w io.Writer
}

// NewConsoleObserver returns a ConsoleObserver writing to w.
// A nil writer defaults to os.Stdout.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleObserver{w: w}
}

// Notify writes the event line. Write errors are ignored; the console is a
// best-effort surface and must not disturb hub operation.
func (c *ConsoleObserver) Notify(event string, payload map[string]any) {
	fmt.Fprintf(c.w, "[EVENT] %s: %v\n", event, payload)
}

// LogObserver forwards events to a structured logger at info level, with the
// payload flattened into key-value pairs.
type LogObserver struct {
	logger Logger
}

// NewLogObserver returns a LogObserver. A nil logger is replaced with a noop.
func NewLogObserver(logger Logger) *LogObserver {
	if logger == nil {
		logger = noopLogger{}
	}
	return &LogObserver{logger: logger}
}

// Notify logs the event with payload keys in sorted order so log lines are
// stable across runs.
func (l *LogObserver) Notify(event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2+len(payload)*2)
	args = append(args, "event", event)
	for _, k := range keys {
		args = append(args, k, payload[k])
	}
	l.logger.Info("hub event", args...)
}
