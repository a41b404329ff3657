package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteDeviceMetric writes a single device measurement to InfluxDB.
//
// This is the primary method for recording device telemetry data.
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - deviceID: Identifier for the device (e.g., "1")
//   - measurement: The metric name (e.g., "power", "setpoint_f", "lock")
//   - value: The numeric value to record
//
// Example:
//
//	client.WriteDeviceMetric("2", "setpoint_f", 68)
//	client.WriteDeviceMetric("1", "power", 1)
func (c *Client) WriteDeviceMetric(deviceID string, measurement string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"device_metrics",
		map[string]string{
			"device_id":   deviceID,
			"measurement": measurement,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEventCount writes one count point for a hub event.
//
// Used for events that carry no numeric state (device_added,
// schedule_added), so dashboards can still graph hub activity.
//
// Parameters:
//   - eventName: The hub event name (e.g., "device_added")
func (c *Client) WriteEventCount(eventName string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"hub_events",
		map[string]string{
			"event": eventName,
		},
		map[string]interface{}{
			"count": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"site": "home-001"},
//	    map[string]interface{}{"devices": 4, "schedules": 2})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
