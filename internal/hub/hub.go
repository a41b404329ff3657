package hub

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rgeddes/hearth-core/internal/device"
)

// Logger defines the logging interface used by the Hub and Ticker.
// It matches the signature of log/slog for easy integration.
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

// Entry is one schedule line: fire Command against DeviceID whenever the
// supplied wall-clock time equals At.
//
// Entries are stored exactly as given. The device ID need not be registered
// at the time the entry is added; resolution happens when the entry fires.
type Entry struct {
	// DeviceID identifies the target device.
	DeviceID int

	// At is the wall-clock trigger in "15:04" form.
	At string

	// Command is the device command name to invoke. Only device.CmdTurnOn
	// and device.CmdTurnOff are schedulable; other commands are rejected
	// when the entry fires.
	Command string
}

// Stats is a point-in-time summary of hub contents.
type Stats struct {
	Devices   int
	Observers int
	Schedules int
}

// Hub is the central coordinator: it owns the device registry, the observer
// list, and the schedule, and funnels every command through proxy
// authorisation before mutating device state.
//
// A single mutex serialises all operations, so devices themselves need no
// locking. Observers are notified synchronously under that lock, in
// registration order, before the triggering method returns.
type Hub struct {
	mu        sync.Mutex
	devices   map[int]*device.Proxy
	order     []int
	observers []Observer
	schedule  []Entry
	logger    Logger
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{
		devices: make(map[int]*device.Proxy),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the hub.
func (h *Hub) SetLogger(logger Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if logger == nil {
		logger = noopLogger{}
	}
	h.logger = logger
}

// AddDevice constructs a device of the given kind, binds it to token, and
// registers it under id.
//
// The kind string is case-insensitive. Registering an ID that already exists
// replaces the old device but keeps its original position in status output.
// On success a device_added event is emitted; on failure the registry is
// unchanged and no event fires.
//
// Returns device.ErrUnknownKind if the kind is not recognised.
func (h *Hub) AddDevice(id int, kind string, token device.Token) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	dev, err := device.New(id, kind)
	if err != nil {
		return err
	}

	if _, exists := h.devices[id]; !exists {
		h.order = append(h.order, id)
	}
	h.devices[id] = device.NewProxy(dev, token)

	h.logger.Debug("device registered", "id", id, "kind", dev.Kind(), "token", token)
	h.notifyLocked(EventDeviceAdded, map[string]any{"id": id, "type": string(dev.Kind())})
	return nil
}

// TurnOn switches light id on and emits turn_on.
func (h *Hub) TurnOn(id int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.turnOnLocked(id)
}

// TurnOff switches light id off and emits turn_off.
func (h *Hub) TurnOff(id int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.turnOffLocked(id)
}

// SetTemp sets thermostat id to temp degrees Fahrenheit and emits set_temp.
func (h *Hub) SetTemp(id, temp int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	proxy, err := h.proxyLocked(id)
	if err != nil {
		return err
	}
	if err := proxy.Call(device.CmdSetTemperature, temp); err != nil {
		return err
	}
	h.notifyLocked(EventSetTemp, map[string]any{"id": id, "temp": temp})
	return nil
}

// Lock locks door id and emits lock.
func (h *Hub) Lock(id int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lockLocked(id)
}

// Unlock unlocks door id and emits unlock.
func (h *Hub) Unlock(id int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.unlockLocked(id)
}

// Status returns one report line per registered device, in registration
// order. Replaced devices report from their original position.
func (h *Hub) Status() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	lines := make([]string, 0, len(h.order))
	for _, id := range h.order {
		lines = append(lines, h.devices[id].StatusReport())
	}
	return lines
}

// AddObserver appends o to the notification list. Observers receive events
// in the order they were added and must honour the Observer contract: no
// re-entry into the hub from Notify.
func (h *Hub) AddObserver(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, o)
}

// SetSchedule records that command should fire against deviceID whenever the
// clock reads at ("15:04" form), then emits schedule_added.
//
// The entry is stored verbatim: the device need not exist yet and the
// command name is not checked here. Both are resolved each time the entry
// fires, so a schedule can be declared before its device is registered.
func (h *Hub) SetSchedule(deviceID int, at, command string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.schedule = append(h.schedule, Entry{DeviceID: deviceID, At: at, Command: command})
	h.logger.Debug("schedule added", "id", deviceID, "at", at, "command", command)
	h.notifyLocked(EventScheduleAdded, map[string]any{"id": deviceID, "time": at, "cmd": command})
}

// RunPending fires every schedule entry whose At equals now ("15:04" form).
//
// Entries are evaluated in the order they were added. Each entry is
// independent: one failing does not stop the rest, and every firing entry
// emits its usual event. Failures are logged and aggregated into the
// returned error (errors.Join), so callers can test individual causes with
// errors.Is.
//
// RunPending keeps no memory of previous calls: invoking it twice with the
// same now fires the same entries twice.
func (h *Hub) RunPending(now string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	for _, e := range h.schedule {
		if e.At != now {
			continue
		}
		if err := h.fireLocked(e); err != nil {
			h.logger.Warn("scheduled command failed",
				"id", e.DeviceID,
				"at", e.At,
				"command", e.Command,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("schedule %q %s device %d: %w", e.At, e.Command, e.DeviceID, err))
		}
	}
	return errors.Join(errs...)
}

// Stats reports current registry, observer, and schedule counts.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		Devices:   len(h.devices),
		Observers: len(h.observers),
		Schedules: len(h.schedule),
	}
}

// ─── Internal (lock held) ────────────────────────────────────────────────────

// proxyLocked resolves id in the registry. Callers must hold h.mu.
func (h *Hub) proxyLocked(id int) (*device.Proxy, error) {
	proxy, ok := h.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrDeviceNotFound, id)
	}
	return proxy, nil
}

func (h *Hub) turnOnLocked(id int) error {
	proxy, err := h.proxyLocked(id)
	if err != nil {
		return err
	}
	if err := proxy.Call(device.CmdTurnOn); err != nil {
		return err
	}
	h.notifyLocked(EventTurnOn, map[string]any{"id": id})
	return nil
}

func (h *Hub) turnOffLocked(id int) error {
	proxy, err := h.proxyLocked(id)
	if err != nil {
		return err
	}
	if err := proxy.Call(device.CmdTurnOff); err != nil {
		return err
	}
	h.notifyLocked(EventTurnOff, map[string]any{"id": id})
	return nil
}

func (h *Hub) lockLocked(id int) error {
	proxy, err := h.proxyLocked(id)
	if err != nil {
		return err
	}
	if err := proxy.Call(device.CmdLockDoor); err != nil {
		return err
	}
	h.notifyLocked(EventLock, map[string]any{"id": id})
	return nil
}

func (h *Hub) unlockLocked(id int) error {
	proxy, err := h.proxyLocked(id)
	if err != nil {
		return err
	}
	if err := proxy.Call(device.CmdUnlockDoor); err != nil {
		return err
	}
	h.notifyLocked(EventUnlock, map[string]any{"id": id})
	return nil
}

// fireLocked executes one schedule entry. Only turnOn and turnOff are
// schedulable; anything else, including the door commands and
// setTemperature, is rejected with device.ErrInvalidCommand at fire time.
func (h *Hub) fireLocked(e Entry) error {
	switch e.Command {
	case device.CmdTurnOn:
		return h.turnOnLocked(e.DeviceID)
	case device.CmdTurnOff:
		return h.turnOffLocked(e.DeviceID)
	default:
		return fmt.Errorf("%w: %q is not schedulable", device.ErrInvalidCommand, e.Command)
	}
}

// notifyLocked broadcasts one event to every observer, synchronously and in
// registration order. Callers must hold h.mu; observers therefore see events
// in exactly the order operations completed.
func (h *Hub) notifyLocked(event string, payload map[string]any) {
	for _, o := range h.observers {
		o.Notify(event, payload)
	}
}
