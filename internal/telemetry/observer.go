// Package telemetry maps hub events onto time-series writes.
//
// The observer turns state-changing events into numeric points a dashboard
// can graph: light power as 0/1, thermostat setpoints in °F, door lock
// state as 0/1. Events with no numeric state are written as counts. Writes
// go through the InfluxDB client's non-blocking batch API, so Notify never
// waits on the network.
package telemetry

import "strconv"

// Measurement names written per event.
const (
	measurementPower    = "power"
	measurementSetpoint = "setpoint_f"
	measurementLock     = "lock"
)

// MetricWriter is the slice of the InfluxDB client the observer needs.
// Satisfied by *influxdb.Client.
type MetricWriter interface {
	WriteDeviceMetric(deviceID string, measurement string, value float64)
	WriteEventCount(eventName string)
}

// Observer writes one telemetry point per hub event. Implements the hub
// Observer contract.
type Observer struct {
	writer MetricWriter
}

// New creates a telemetry observer writing through w.
func New(w MetricWriter) *Observer {
	return &Observer{writer: w}
}

// Notify records the event. Implements the hub Observer contract.
//
// Events carrying device state become device metrics; anything else,
// including events with a missing or malformed id, becomes a count point
// tagged by event name.
func (o *Observer) Notify(event string, payload map[string]any) {
	id, ok := payload["id"].(int)
	if !ok {
		o.writer.WriteEventCount(event)
		return
	}
	deviceID := strconv.Itoa(id)

	switch event {
	case "turn_on":
		o.writer.WriteDeviceMetric(deviceID, measurementPower, 1)
	case "turn_off":
		o.writer.WriteDeviceMetric(deviceID, measurementPower, 0)
	case "set_temp":
		temp, ok := payload["temp"].(int)
		if !ok {
			o.writer.WriteEventCount(event)
			return
		}
		o.writer.WriteDeviceMetric(deviceID, measurementSetpoint, float64(temp))
	case "lock":
		o.writer.WriteDeviceMetric(deviceID, measurementLock, 1)
	case "unlock":
		o.writer.WriteDeviceMetric(deviceID, measurementLock, 0)
	default:
		o.writer.WriteEventCount(event)
	}
}
