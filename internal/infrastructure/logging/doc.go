// Package logging provides structured logging for Hearth Core.
//
// It wraps the standard log/slog package so every component logs through
// one consistently configured pipeline.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("hub started", "devices", 3)
//	logger.Error("journal write failed", "error", err)
//
// # Security
//
// Never log secrets or access tokens. The two-tier device tokens are not
// secret in themselves but still belong at debug level only.
package logging
