// Package influxdb provides InfluxDB connectivity for Hearth Core.
//
// It wraps the official influxdb-client-go v2 library with the connection
// management, metric writing, and health monitoring shapes the rest of the
// codebase uses.
//
// # Purpose
//
// This package handles time-series storage for hub telemetry: light power
// transitions, thermostat setpoints, door lock state, and event counts. The
// telemetry observer maps hub events onto these writes.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "hearth",
//	    Bucket: "metrics",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteDeviceMetric("1", "power", 1)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking; batch errors are delivered via the
// SetOnError callback. Connection and health check errors are returned
// directly.
package influxdb
