package hub

import (
	"errors"
	"sync"
	"testing"

	"github.com/rgeddes/hearth-core/internal/device"
)

// ─── Mock Dependencies ───────────────────────────────────────────────────────

type recordedEvent struct {
	name    string
	payload map[string]any
}

// MockObserver records every notification in arrival order.
type MockObserver struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (m *MockObserver) Notify(event string, payload map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make(map[string]any, len(payload))
	for k, v := range payload {
		cp[k] = v
	}
	m.events = append(m.events, recordedEvent{name: event, payload: cp})
}

func (m *MockObserver) Events() []recordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedEvent(nil), m.events...)
}

func (m *MockObserver) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.events))
	for _, e := range m.events {
		names = append(names, e.name)
	}
	return names
}

// newTestHub creates a hub with one recording observer attached.
func newTestHub(t *testing.T) (*Hub, *MockObserver) {
	t.Helper()
	h := New()
	obs := &MockObserver{}
	h.AddObserver(obs)
	return h, obs
}

// ─── AddDevice ───────────────────────────────────────────────────────────────

func TestAddDeviceEmitsEvent(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}

	events := obs.Events()
	if len(events) != 1 {
		t.Fatalf("observer saw %d events, want 1", len(events))
	}
	if events[0].name != EventDeviceAdded {
		t.Errorf("event name = %q, want %q", events[0].name, EventDeviceAdded)
	}
	if got := events[0].payload["id"]; got != 1 {
		t.Errorf("payload id = %v, want 1", got)
	}
	if got := events[0].payload["type"]; got != "light" {
		t.Errorf("payload type = %v, want %q", got, "light")
	}
}

func TestAddDeviceUnknownKind(t *testing.T) {
	h, obs := newTestHub(t)

	err := h.AddDevice(1, "blender", device.TokenAdmin)
	if !errors.Is(err, device.ErrUnknownKind) {
		t.Fatalf("AddDevice(blender) error = %v, want %v", err, device.ErrUnknownKind)
	}
	if len(obs.Events()) != 0 {
		t.Errorf("observer saw %d events after failed add, want 0", len(obs.Events()))
	}
	if got := h.Stats().Devices; got != 0 {
		t.Errorf("device count after failed add = %d, want 0", got)
	}
}

func TestAddDeviceOverwriteKeepsPosition(t *testing.T) {
	h, obs := newTestHub(t)

	mustAdd := func(id int, kind string) {
		t.Helper()
		if err := h.AddDevice(id, kind, device.TokenAdmin); err != nil {
			t.Fatalf("AddDevice(%d, %q) unexpected error: %v", id, kind, err)
		}
	}

	mustAdd(1, "light")
	mustAdd(2, "thermostat")
	mustAdd(3, "door")

	if err := h.TurnOn(1); err != nil {
		t.Fatalf("TurnOn(1) unexpected error: %v", err)
	}

	// Re-register id 1 as a door: position 1 in status output is retained,
	// the light's state is gone, and device_added fires again.
	mustAdd(1, "door")

	want := []string{
		"Door 1 is locked",
		"Thermostat 2 at 70°F",
		"Door 3 is locked",
	}
	got := h.Status()
	if len(got) != len(want) {
		t.Fatalf("Status() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Status()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	names := obs.Names()
	wantNames := []string{EventDeviceAdded, EventDeviceAdded, EventDeviceAdded, EventTurnOn, EventDeviceAdded}
	if len(names) != len(wantNames) {
		t.Fatalf("event names = %v, want %v", names, wantNames)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("event[%d] = %q, want %q", i, names[i], wantNames[i])
		}
	}

	if got := h.Stats().Devices; got != 3 {
		t.Errorf("device count after overwrite = %d, want 3", got)
	}
}

// ─── Command Operations ──────────────────────────────────────────────────────

func TestCommandOperationsEmitEvents(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	if err := h.AddDevice(2, "thermostat", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	if err := h.AddDevice(3, "door", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}

	if err := h.TurnOn(1); err != nil {
		t.Fatalf("TurnOn(1) unexpected error: %v", err)
	}
	if err := h.TurnOff(1); err != nil {
		t.Fatalf("TurnOff(1) unexpected error: %v", err)
	}
	if err := h.SetTemp(2, 76); err != nil {
		t.Fatalf("SetTemp(2, 76) unexpected error: %v", err)
	}
	if err := h.Unlock(3); err != nil {
		t.Fatalf("Unlock(3) unexpected error: %v", err)
	}
	if err := h.Lock(3); err != nil {
		t.Fatalf("Lock(3) unexpected error: %v", err)
	}

	names := obs.Names()
	wantNames := []string{
		EventDeviceAdded, EventDeviceAdded, EventDeviceAdded,
		EventTurnOn, EventTurnOff, EventSetTemp, EventUnlock, EventLock,
	}
	if len(names) != len(wantNames) {
		t.Fatalf("event names = %v, want %v", names, wantNames)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("event[%d] = %q, want %q", i, names[i], wantNames[i])
		}
	}

	// set_temp carries the new temperature.
	events := obs.Events()
	setTemp := events[5]
	if got := setTemp.payload["temp"]; got != 76 {
		t.Errorf("set_temp payload temp = %v, want 76", got)
	}
	if got := setTemp.payload["id"]; got != 2 {
		t.Errorf("set_temp payload id = %v, want 2", got)
	}
}

func TestCommandDeviceNotFound(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.TurnOn(99); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("TurnOn(99) error = %v, want %v", err, ErrDeviceNotFound)
	}
	if err := h.SetTemp(99, 70); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("SetTemp(99, 70) error = %v, want %v", err, ErrDeviceNotFound)
	}
	if err := h.Lock(99); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Lock(99) error = %v, want %v", err, ErrDeviceNotFound)
	}
	if len(obs.Events()) != 0 {
		t.Errorf("observer saw %d events after failed commands, want 0", len(obs.Events()))
	}
}

func TestCommandWrongKindNoEvent(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(2, "thermostat", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	before := len(obs.Events())

	if err := h.TurnOn(2); !errors.Is(err, device.ErrInvalidCommand) {
		t.Errorf("TurnOn(thermostat) error = %v, want %v", err, device.ErrInvalidCommand)
	}
	if err := h.Lock(2); !errors.Is(err, device.ErrInvalidCommand) {
		t.Errorf("Lock(thermostat) error = %v, want %v", err, device.ErrInvalidCommand)
	}

	if got := len(obs.Events()); got != before {
		t.Errorf("observer saw %d new events after failed commands, want 0", got-before)
	}
	if got := h.Status()[0]; got != "Thermostat 2 at 70°F" {
		t.Errorf("status after failed commands = %q, want unchanged", got)
	}
}

func TestCommandUnauthorizedNoEvent(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(3, "door", device.TokenPublic); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	before := len(obs.Events())

	if err := h.Unlock(3); !errors.Is(err, device.ErrUnauthorized) {
		t.Errorf("Unlock(public door) error = %v, want %v", err, device.ErrUnauthorized)
	}

	if got := len(obs.Events()); got != before {
		t.Errorf("observer saw %d new events after unauthorised command, want 0", got-before)
	}
	if got := h.Status()[0]; got != "Door 3 is locked" {
		t.Errorf("status after unauthorised command = %q, want %q", got, "Door 3 is locked")
	}
}

// ─── Observers ───────────────────────────────────────────────────────────────

func TestObserversNotifiedInRegistrationOrder(t *testing.T) {
	h := New()

	var (
		mu    sync.Mutex
		calls []string
	)
	first := observerFunc(func(event string, _ map[string]any) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "first:"+event)
	})
	second := observerFunc(func(event string, _ map[string]any) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "second:"+event)
	})

	h.AddObserver(first)
	h.AddObserver(second)

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	if err := h.TurnOn(1); err != nil {
		t.Fatalf("TurnOn() unexpected error: %v", err)
	}

	want := []string{
		"first:" + EventDeviceAdded,
		"second:" + EventDeviceAdded,
		"first:" + EventTurnOn,
		"second:" + EventTurnOn,
	}
	mu.Lock()
	defer mu.Unlock()
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

// observerFunc adapts a function to the Observer interface.
type observerFunc func(event string, payload map[string]any)

func (f observerFunc) Notify(event string, payload map[string]any) {
	f(event, payload)
}

func TestObserverAddedLateMissesEarlierEvents(t *testing.T) {
	h := New()

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}

	obs := &MockObserver{}
	h.AddObserver(obs)

	if err := h.TurnOn(1); err != nil {
		t.Fatalf("TurnOn() unexpected error: %v", err)
	}

	names := obs.Names()
	if len(names) != 1 || names[0] != EventTurnOn {
		t.Errorf("late observer saw %v, want [%q]", names, EventTurnOn)
	}
}

// ─── Schedule ────────────────────────────────────────────────────────────────

func TestSetScheduleEmitsEvent(t *testing.T) {
	h, obs := newTestHub(t)

	// The device is deliberately unregistered: schedules may be declared
	// ahead of their devices.
	h.SetSchedule(9, "23:30", device.CmdTurnOff)

	events := obs.Events()
	if len(events) != 1 {
		t.Fatalf("observer saw %d events, want 1", len(events))
	}
	e := events[0]
	if e.name != EventScheduleAdded {
		t.Errorf("event name = %q, want %q", e.name, EventScheduleAdded)
	}
	if got := e.payload["id"]; got != 9 {
		t.Errorf("payload id = %v, want 9", got)
	}
	if got := e.payload["time"]; got != "23:30" {
		t.Errorf("payload time = %v, want %q", got, "23:30")
	}
	if got := e.payload["cmd"]; got != device.CmdTurnOff {
		t.Errorf("payload cmd = %v, want %q", got, device.CmdTurnOff)
	}
	if got := h.Stats().Schedules; got != 1 {
		t.Errorf("schedule count = %d, want 1", got)
	}
}

func TestRunPendingFiresMatchingEntries(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	h.SetSchedule(1, "07:00", device.CmdTurnOn)
	h.SetSchedule(1, "23:00", device.CmdTurnOff)

	if err := h.RunPending("07:00"); err != nil {
		t.Fatalf("RunPending(07:00) unexpected error: %v", err)
	}

	if got := h.Status()[0]; got != "Light 1 is on" {
		t.Errorf("status after 07:00 pass = %q, want %q", got, "Light 1 is on")
	}

	names := obs.Names()
	if names[len(names)-1] != EventTurnOn {
		t.Errorf("last event = %q, want %q", names[len(names)-1], EventTurnOn)
	}
}

func TestRunPendingNoMatches(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	h.SetSchedule(1, "07:00", device.CmdTurnOn)
	before := len(obs.Events())

	if err := h.RunPending("07:01"); err != nil {
		t.Fatalf("RunPending(07:01) unexpected error: %v", err)
	}
	if got := h.Status()[0]; got != "Light 1 is off" {
		t.Errorf("status after non-matching pass = %q, want %q", got, "Light 1 is off")
	}
	if got := len(obs.Events()); got != before {
		t.Errorf("observer saw %d new events, want 0", got-before)
	}
}

func TestRunPendingRepeatFires(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	h.SetSchedule(1, "07:00", device.CmdTurnOn)
	before := len(obs.Events())

	if err := h.RunPending("07:00"); err != nil {
		t.Fatalf("first RunPending unexpected error: %v", err)
	}
	if err := h.RunPending("07:00"); err != nil {
		t.Fatalf("second RunPending unexpected error: %v", err)
	}

	// No duplicate suppression: the entry fires on every matching call.
	if got := len(obs.Events()) - before; got != 2 {
		t.Errorf("observer saw %d events from two passes, want 2", got)
	}
}

func TestRunPendingEntryIsolation(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}

	// First entry targets a missing device, second a real one. The failure
	// must not prevent the second entry from firing.
	h.SetSchedule(42, "07:00", device.CmdTurnOn)
	h.SetSchedule(1, "07:00", device.CmdTurnOn)

	err := h.RunPending("07:00")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("RunPending error = %v, want %v", err, ErrDeviceNotFound)
	}

	if got := h.Status()[0]; got != "Light 1 is on" {
		t.Errorf("status after partial failure = %q, want %q", got, "Light 1 is on")
	}
	names := obs.Names()
	if names[len(names)-1] != EventTurnOn {
		t.Errorf("last event = %q, want %q", names[len(names)-1], EventTurnOn)
	}
}

func TestRunPendingAggregatesErrors(t *testing.T) {
	h, _ := newTestHub(t)

	if err := h.AddDevice(2, "thermostat", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}

	h.SetSchedule(42, "07:00", device.CmdTurnOn)          // missing device
	h.SetSchedule(2, "07:00", device.CmdTurnOn)           // wrong kind
	h.SetSchedule(2, "07:00", device.CmdSetTemperature)   // not schedulable

	err := h.RunPending("07:00")
	if err == nil {
		t.Fatal("RunPending() error = nil, want aggregate error")
	}
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("aggregate error missing %v: %v", ErrDeviceNotFound, err)
	}
	if !errors.Is(err, device.ErrInvalidCommand) {
		t.Errorf("aggregate error missing %v: %v", device.ErrInvalidCommand, err)
	}
}

func TestRunPendingUnschedulableCommand(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(2, "thermostat", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	before := len(obs.Events())

	// setTemperature needs an argument a schedule entry cannot carry.
	h.SetSchedule(2, "07:00", device.CmdSetTemperature)

	err := h.RunPending("07:00")
	if !errors.Is(err, device.ErrInvalidCommand) {
		t.Errorf("RunPending error = %v, want %v", err, device.ErrInvalidCommand)
	}
	if got := h.Status()[0]; got != "Thermostat 2 at 70°F" {
		t.Errorf("status after failed entry = %q, want unchanged", got)
	}
	// Only the schedule_added event, nothing from the failed firing.
	if got := len(obs.Events()) - before; got != 1 {
		t.Errorf("observer saw %d events, want 1 (schedule_added only)", got)
	}
}

func TestRunPendingDoorCommandsNotSchedulable(t *testing.T) {
	h, obs := newTestHub(t)

	if err := h.AddDevice(3, "door", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	if err := h.Unlock(3); err != nil {
		t.Fatalf("Unlock() unexpected error: %v", err)
	}
	before := len(obs.Events())

	// Schedules fire lights only; a door command in an entry must fail at
	// fire time rather than silently locking the door.
	h.SetSchedule(3, "07:00", device.CmdLockDoor)

	err := h.RunPending("07:00")
	if !errors.Is(err, device.ErrInvalidCommand) {
		t.Errorf("RunPending error = %v, want %v", err, device.ErrInvalidCommand)
	}
	if got := h.Status()[0]; got != "Door 3 is unlocked" {
		t.Errorf("status after rejected entry = %q, want %q", got, "Door 3 is unlocked")
	}
	for _, name := range obs.Names()[before:] {
		if name == EventLock {
			t.Error("observer saw a lock event from a rejected schedule entry")
		}
	}
}

// ─── Status ──────────────────────────────────────────────────────────────────

func TestStatusRegistrationOrder(t *testing.T) {
	h := New()

	if err := h.AddDevice(5, "door", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	if err := h.AddDevice(3, "thermostat", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}

	// Order follows registration, not ID.
	want := []string{
		"Door 5 is locked",
		"Light 1 is off",
		"Thermostat 3 at 70°F",
	}
	got := h.Status()
	if len(got) != len(want) {
		t.Fatalf("Status() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Status()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStatusEmpty(t *testing.T) {
	h := New()
	if got := h.Status(); len(got) != 0 {
		t.Errorf("Status() on empty hub = %v, want empty", got)
	}
}

func TestStats(t *testing.T) {
	h, _ := newTestHub(t)

	if err := h.AddDevice(1, "light", device.TokenAdmin); err != nil {
		t.Fatalf("AddDevice() unexpected error: %v", err)
	}
	h.SetSchedule(1, "07:00", device.CmdTurnOn)
	h.SetSchedule(1, "23:00", device.CmdTurnOff)

	got := h.Stats()
	want := Stats{Devices: 1, Observers: 1, Schedules: 2}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
