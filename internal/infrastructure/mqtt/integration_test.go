//go:build integration

package mqtt

import (
	"context"
	"testing"
	"time"

	"github.com/rgeddes/hearth-core/internal/infrastructure/config"
)

// Integration tests for broker connectivity and publishing.
// These tests require a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -v ./internal/infrastructure/mqtt/...

func integrationConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "hearth-integration-test",
			TLS:      false,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

func TestIntegrationConnect(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}
}

func TestIntegrationConnectInvalidBroker(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.Port = 19999

	if _, err := Connect(cfg); err == nil {
		t.Fatal("Connect() expected error for unreachable broker")
	}
}

func TestIntegrationPublishEvent(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "hearth-int-publish"

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topic := Topics{}.Event("turn_on")
	payload := []byte(`{"event":"turn_on","payload":{"id":1}}`)
	if err := client.Publish(topic, payload, client.QoS(), false); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
}

func TestIntegrationHealthCheck(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestIntegrationCloseThenPublish(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	err = client.Publish(Topics{}.Event("turn_off"), []byte("{}"), 1, false)
	if err == nil {
		t.Error("Publish() after Close() expected error")
	}
}
