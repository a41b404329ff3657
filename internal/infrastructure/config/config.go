package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Hearth Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site      SiteConfig       `yaml:"site"`
	Database  DatabaseConfig   `yaml:"database"`
	MQTT      MQTTConfig       `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig   `yaml:"influxdb"`
	Logging   LoggingConfig    `yaml:"logging"`
	Journal   JournalConfig    `yaml:"journal"`
	Console   ConsoleConfig    `yaml:"console"`
	Schedule  ScheduleConfig   `yaml:"schedule"`
	Devices   []DeviceConfig   `yaml:"devices"`
	Schedules []ScheduleEntry  `yaml:"schedules"`
}

// SiteConfig contains site-specific information.
type SiteConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// DatabaseConfig contains SQLite database settings for the event journal.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings for the event relay.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings for device telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// JournalConfig contains event journal settings.
type JournalConfig struct {
	// Enabled attaches the journal observer so every hub event is
	// recorded in SQLite.
	Enabled bool `yaml:"enabled"`

	// WriteTimeout bounds a single journal insert, in seconds.
	WriteTimeout int `yaml:"write_timeout"`
}

// ConsoleConfig controls the console event observer.
type ConsoleConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ScheduleConfig contains schedule ticker settings.
type ScheduleConfig struct {
	// TickInterval is how often the wall clock is sampled, in seconds.
	TickInterval int `yaml:"tick_interval"`
}

// DeviceConfig declares one device to register at startup.
type DeviceConfig struct {
	ID    int    `yaml:"id"`
	Kind  string `yaml:"kind"`
	Token string `yaml:"token"`
}

// ScheduleEntry declares one schedule line to install at startup.
type ScheduleEntry struct {
	DeviceID int    `yaml:"device_id"`
	At       string `yaml:"at"`
	Command  string `yaml:"command"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HEARTH_SECTION_KEY
// For example: HEARTH_DATABASE_PATH, HEARTH_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
//
// Out of the box the hub runs with the console observer and SQLite journal
// only; the MQTT relay and InfluxDB telemetry need a reachable service and
// so default to disabled.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:       "home-001",
			Name:     "Hearth",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Path:        "./data/hearth.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "hearth-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Journal: JournalConfig{
			Enabled:      true,
			WriteTimeout: 5,
		},
		Console: ConsoleConfig{
			Enabled: true,
		},
		Schedule: ScheduleConfig{
			TickInterval: 60,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HEARTH_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("HEARTH_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("HEARTH_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("HEARTH_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("HEARTH_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("HEARTH_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("HEARTH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for structural errors.
//
// Device kinds and access tokens are deliberately not interpreted here;
// the daemon validates them against the device package when it registers
// the inventory, keeping this package free of domain knowledge.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}
	if c.Site.Timezone != "" {
		if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("site.timezone %q is not a valid IANA zone", c.Site.Timezone))
		}
	}

	if c.Journal.Enabled && c.Database.Path == "" {
		errs = append(errs, "database.path is required when the journal is enabled")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Token == "" {
			errs = append(errs, "influxdb.token is required when influxdb is enabled (set HEARTH_INFLUXDB_TOKEN)")
		}
	}

	if c.Schedule.TickInterval < 1 {
		errs = append(errs, "schedule.tick_interval must be at least 1 second")
	}

	for i, d := range c.Devices {
		if d.Kind == "" {
			errs = append(errs, fmt.Sprintf("devices[%d].kind is required", i))
		}
		if d.Token == "" {
			errs = append(errs, fmt.Sprintf("devices[%d].token is required", i))
		}
	}

	for i, s := range c.Schedules {
		if _, err := time.Parse("15:04", s.At); err != nil {
			errs = append(errs, fmt.Sprintf("schedules[%d].at %q must be in HH:MM form", i, s.At))
		}
		if s.Command == "" {
			errs = append(errs, fmt.Sprintf("schedules[%d].command is required", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// Location resolves the site timezone. An empty timezone yields UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Site.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Site.Timezone)
}

// GetTickInterval returns the schedule tick interval as a Duration.
func (c *Config) GetTickInterval() time.Duration {
	return time.Duration(c.Schedule.TickInterval) * time.Second
}

// GetJournalWriteTimeout returns the journal write timeout as a Duration.
func (c *Config) GetJournalWriteTimeout() time.Duration {
	return time.Duration(c.Journal.WriteTimeout) * time.Second
}
