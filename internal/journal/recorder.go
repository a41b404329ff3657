package journal

import (
	"context"
	"time"
)

// defaultWriteTimeout bounds one journal insert when no timeout is given.
const defaultWriteTimeout = 5 * time.Second

// Logger defines the logging interface used by the Recorder.
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

// Recorder adapts the repository to the hub's observer contract: every
// event becomes one row in the event_log table.
//
// Notify runs synchronously inside the hub's event fan-out, so each write
// carries its own deadline and a failed write is logged and swallowed
// rather than surfaced. Losing a journal row must never fail the device
// command that produced it.
type Recorder struct {
	repo    Repository
	timeout time.Duration
	logger  Logger
}

// NewRecorder creates a journal recorder. A non-positive timeout defaults
// to five seconds.
func NewRecorder(repo Repository, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &Recorder{
		repo:    repo,
		timeout: timeout,
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the recorder.
func (r *Recorder) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.logger = logger
}

// Notify records one hub event. Implements the hub Observer contract.
func (r *Recorder) Notify(event string, payload map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	entry := &Entry{
		Event:   event,
		Payload: payload,
	}
	if id, ok := payload["id"].(int); ok {
		entry.DeviceID = &id
	}

	if err := r.repo.Record(ctx, entry); err != nil {
		r.logger.Error("journal write failed", "event", event, "error", err)
		return
	}
	r.logger.Debug("event journaled", "event", event, "entry_id", entry.ID)
}
