// Package mqtt provides the outbound MQTT connection for Hearth Core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// Hearth uses MQTT as a one-way event relay: the hub's event stream is
// published so that dashboards, log shippers, and other homes on the broker
// can follow what the hub is doing. Nothing in the core subscribes; commands
// never arrive over the wire, so the client is publish-only.
//
//	Hearth Core → MQTT Broker → any interested subscriber
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.Event("turn_on")
//	client.Publish(topic, []byte(`{"event":"turn_on","payload":{"id":1}}`), 1, false)
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
package mqtt
