package device

import "fmt"

// Kind classifies a device and fixes its command set. A device's kind never
// changes after construction.
type Kind string

// Recognised device kinds.
const (
	KindLight      Kind = "light"
	KindThermostat Kind = "thermostat"
	KindDoor       Kind = "door"
)

// AllKinds returns every kind the factory can construct.
func AllKinds() []Kind {
	return []Kind{KindLight, KindThermostat, KindDoor}
}

// Power is the on/off state of a light.
type Power string

// Light power states.
const (
	PowerOn  Power = "on"
	PowerOff Power = "off"
)

// LockState is the locked/unlocked state of a door.
type LockState string

// Door lock states.
const (
	LockLocked   LockState = "locked"
	LockUnlocked LockState = "unlocked"
)

// DefaultTemperature is the setpoint a thermostat starts at, in °F.
const DefaultTemperature = 70

// Device is a controllable endpoint with an identity, a kind, and a
// human-readable status line. The concrete types behind it are Light,
// Thermostat, and Door; state-changing commands are reached through the
// per-kind command tables via a Proxy, never through this interface.
type Device interface {
	// ID returns the device's identifier. IDs are assigned by the caller
	// and are expected to be unique positive integers.
	ID() int

	// Kind returns the device's kind tag.
	Kind() Kind

	// StatusReport renders the device's current state as a single line,
	// e.g. "Light 1 is off".
	StatusReport() string
}

// Light is a switchable device. It starts off.
type Light struct {
	id    int
	power Power
}

// NewLight returns a light in the off state.
func NewLight(id int) *Light {
	return &Light{id: id, power: PowerOff}
}

// ID implements Device.
func (l *Light) ID() int { return l.id }

// Kind implements Device.
func (l *Light) Kind() Kind { return KindLight }

// TurnOn switches the light on.
func (l *Light) TurnOn() { l.power = PowerOn }

// TurnOff switches the light off.
func (l *Light) TurnOff() { l.power = PowerOff }

// Power returns the current on/off state.
func (l *Light) Power() Power { return l.power }

// StatusReport implements Device.
func (l *Light) StatusReport() string {
	return fmt.Sprintf("Light %d is %s", l.id, l.power)
}

// Thermostat is a temperature setpoint device. It starts at
// DefaultTemperature.
type Thermostat struct {
	id          int
	temperature int
}

// NewThermostat returns a thermostat at the default setpoint.
func NewThermostat(id int) *Thermostat {
	return &Thermostat{id: id, temperature: DefaultTemperature}
}

// ID implements Device.
func (t *Thermostat) ID() int { return t.id }

// Kind implements Device.
func (t *Thermostat) Kind() Kind { return KindThermostat }

// SetTemperature sets the setpoint in °F. The range is unconstrained.
func (t *Thermostat) SetTemperature(value int) { t.temperature = value }

// Temperature returns the current setpoint in °F.
func (t *Thermostat) Temperature() int { return t.temperature }

// StatusReport implements Device.
func (t *Thermostat) StatusReport() string {
	return fmt.Sprintf("Thermostat %d at %d°F", t.id, t.temperature)
}

// Door is a lockable device. It starts locked.
type Door struct {
	id   int
	lock LockState
}

// NewDoor returns a door in the locked state.
func NewDoor(id int) *Door {
	return &Door{id: id, lock: LockLocked}
}

// ID implements Device.
func (d *Door) ID() int { return d.id }

// Kind implements Device.
func (d *Door) Kind() Kind { return KindDoor }

// LockDoor engages the lock.
func (d *Door) LockDoor() { d.lock = LockLocked }

// UnlockDoor releases the lock.
func (d *Door) UnlockDoor() { d.lock = LockUnlocked }

// LockState returns the current lock state.
func (d *Door) LockState() LockState { return d.lock }

// StatusReport implements Device.
func (d *Door) StatusReport() string {
	return fmt.Sprintf("Door %d is %s", d.id, d.lock)
}
