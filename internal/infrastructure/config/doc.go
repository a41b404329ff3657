// Package config handles loading and validating Hearth Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (HEARTH_ prefix)
//   - Validation of required fields
//   - Default value handling
//   - The declarative device and schedule inventory
//
// Validation here is structural only: it checks that values are well
// formed (a parseable timezone, HH:MM schedule times, QoS in range). The
// daemon interprets device kinds and access tokens against the device
// package when it registers the inventory, so this package carries no
// domain knowledge.
//
// Security Considerations:
//   - Sensitive values (broker passwords, InfluxDB tokens) should be set
//     via environment variables rather than the file
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Site.Name)
package config
