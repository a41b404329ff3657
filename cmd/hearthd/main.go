// Hearth Core - home automation hub
//
// This is the main entry point for the hearthd daemon. It wires the hub
// core to its optional sinks:
//   - SQLite event journal (embedded migrations)
//   - MQTT event relay
//   - InfluxDB telemetry
//   - Console and structured-log observers
//
// Devices and schedules are registered declaratively from config.yaml; the
// schedule ticker then drives the hub from the wall clock until shutdown.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rgeddes/hearth-core/migrations"

	"github.com/rgeddes/hearth-core/internal/device"
	"github.com/rgeddes/hearth-core/internal/hub"
	"github.com/rgeddes/hearth-core/internal/infrastructure/config"
	"github.com/rgeddes/hearth-core/internal/infrastructure/database"
	"github.com/rgeddes/hearth-core/internal/infrastructure/influxdb"
	"github.com/rgeddes/hearth-core/internal/infrastructure/logging"
	"github.com/rgeddes/hearth-core/internal/infrastructure/mqtt"
	"github.com/rgeddes/hearth-core/internal/journal"
	"github.com/rgeddes/hearth-core/internal/relay"
	"github.com/rgeddes/hearth-core/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Hearth Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Resolve the site timezone; the ticker fires schedules in it.
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("resolving site timezone: %w", err)
	}

	// Build the hub core. It runs with zero sinks attached; everything
	// below this point is optional wiring.
	h := hub.New()
	h.SetLogger(log)

	if cfg.Console.Enabled {
		h.AddObserver(hub.NewConsoleObserver(os.Stdout))
	}
	h.AddObserver(hub.NewLogObserver(log))

	// Event journal (SQLite)
	var db *database.DB
	if cfg.Journal.Enabled {
		db, err = database.Open(database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
		log.Info("database connected", "path", cfg.Database.Path)

		if migrateErr := db.Migrate(ctx); migrateErr != nil {
			return fmt.Errorf("running migrations: %w", migrateErr)
		}
		log.Info("database migrations complete")

		repo := journal.NewSQLiteRepository(db.DB)
		recorder := journal.NewRecorder(repo, cfg.GetJournalWriteTimeout())
		recorder.SetLogger(log)
		h.AddObserver(recorder)
		log.Info("event journal attached")

		logRecentActivity(ctx, repo, log)
	} else {
		log.Info("event journal disabled")
	}

	// MQTT event relay
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		eventRelay := relay.New(mqttClient, mqttClient.QoS())
		eventRelay.SetLogger(log)
		h.AddObserver(eventRelay)
		log.Info("event relay attached")
	} else {
		log.Info("MQTT disabled")
	}

	// InfluxDB telemetry
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		h.AddObserver(telemetry.New(influxClient))
		log.Info("telemetry observer attached")
	} else {
		log.Info("InfluxDB disabled")
	}

	// Register the declared inventory. Events fire through the sinks wired
	// above, so startup registrations are journaled and relayed like any
	// runtime change.
	if err := registerInventory(cfg, h, log); err != nil {
		return err
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	// Start the schedule ticker
	ticker := hub.NewTicker(h, cfg.GetTickInterval(), loc)
	ticker.SetLogger(log)
	if err := ticker.Start(ctx); err != nil {
		return fmt.Errorf("starting schedule ticker: %w", err)
	}
	defer ticker.Stop()

	stats := h.Stats()
	log.Info("initialisation complete, waiting for shutdown signal",
		"devices", stats.Devices,
		"observers", stats.Observers,
		"schedules", stats.Schedules,
	)

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred calls run in reverse order:
	// 1. Ticker
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database (if enabled)

	log.Info("Hearth Core stopped")
	return nil
}

// registerInventory adds the devices and schedules declared in config.
//
// Config validation has already checked structure (HH:MM form, non-empty
// fields); kind and token strings are validated here against the device
// package so a typo fails startup rather than every later command.
func registerInventory(cfg *config.Config, h *hub.Hub, log *logging.Logger) error {
	for _, d := range cfg.Devices {
		token, err := device.ParseToken(d.Token)
		if err != nil {
			return fmt.Errorf("device %d: %w", d.ID, err)
		}
		if err := h.AddDevice(d.ID, d.Kind, token); err != nil {
			return fmt.Errorf("registering device %d: %w", d.ID, err)
		}
	}
	if len(cfg.Devices) > 0 {
		log.Info("devices registered", "count", len(cfg.Devices))
	}

	for _, s := range cfg.Schedules {
		h.SetSchedule(s.DeviceID, s.At, s.Command)
	}
	if len(cfg.Schedules) > 0 {
		log.Info("schedules installed", "count", len(cfg.Schedules))
	}

	return nil
}

// recentActivityLimit is how many journal entries the startup log shows.
const recentActivityLimit = 5

// logRecentActivity logs the most recent journal entries so an operator
// restarting the daemon sees what the hub last did. Query failures are
// logged and ignored; history is a convenience, not a startup dependency.
func logRecentActivity(ctx context.Context, repo journal.Repository, log *logging.Logger) {
	result, err := repo.List(ctx, journal.Filter{Limit: recentActivityLimit})
	if err != nil {
		log.Warn("could not read recent journal activity", "error", err)
		return
	}
	if result.Total == 0 {
		log.Info("event journal is empty")
		return
	}

	log.Info("recent journal activity", "total", result.Total, "showing", len(result.Entries))
	for _, e := range result.Entries {
		log.Info("journal entry",
			"id", e.ID,
			"event", e.Event,
			"at", e.CreatedAt.Format(time.RFC3339),
		)
	}
}

// getConfigPath returns the configuration file path.
// Uses HEARTH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HEARTH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all enabled infrastructure connections are healthy.
// Any of the clients may be nil when its sink is disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if db != nil {
		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
