package hub

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// clockLayout is the wall-clock form used by schedule entries.
const clockLayout = "15:04"

// defaultTickInterval is how often the ticker samples the wall clock.
// One tick per minute matches the schedule's minute resolution.
const defaultTickInterval = time.Minute

// Ticker drives the hub's schedule from the real clock. At each interval it
// formats the current time in its location as "15:04" and hands it to
// Hub.RunPending.
//
// The schedule itself has no duplicate suppression, and neither does the
// ticker: if two ticks land inside the same minute the matching entries fire
// twice, and a minute with no tick is skipped. At the default one-minute
// interval each minute is sampled once in practice.
type Ticker struct {
	hub      *Hub
	interval time.Duration
	loc      *time.Location
	logger   Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewTicker creates a ticker for h. A zero interval defaults to one minute;
// a nil location defaults to time.Local, which should be the site's
// timezone so entries fire at local wall-clock times.
func NewTicker(h *Hub, interval time.Duration, loc *time.Location) *Ticker {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	if loc == nil {
		loc = time.Local
	}
	return &Ticker{
		hub:      h,
		interval: interval,
		loc:      loc,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the ticker.
func (t *Ticker) SetLogger(logger Logger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if logger == nil {
		logger = noopLogger{}
	}
	t.logger = logger
}

// Start launches the tick loop. It returns an error if the ticker is
// already running. The loop stops when ctx is cancelled or Stop is called.
func (t *Ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("schedule ticker is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.running = true
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.run(runCtx)

	t.logger.Info("schedule ticker started", "interval", t.interval, "location", t.loc.String())
	return nil
}

// Stop halts the tick loop and waits for it to exit. Safe to call when the
// ticker is not running.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	cancel := t.cancel
	done := t.done
	t.running = false
	t.mu.Unlock()

	cancel()
	<-done

	t.logger.Info("schedule ticker stopped")
}

func (t *Ticker) run(ctx context.Context) {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.fire(now)
		}
	}
}

// fire runs one schedule pass for the tick time.
func (t *Ticker) fire(now time.Time) {
	wall := now.In(t.loc).Format(clockLayout)
	if err := t.hub.RunPending(wall); err != nil {
		// Per-entry detail is already logged by the hub; this records the
		// pass itself failing so operators see it against the tick time.
		t.logger.Warn("schedule pass completed with failures", "at", wall, "error", err)
	}
}
