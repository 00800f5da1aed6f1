// Package config loads and validates the TOML configuration shared by the
// CLI and the watch daemon: storage root, pipeline stages, polling behavior,
// directory CSV, notifications, and logging.
package config
