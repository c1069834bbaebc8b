// Package config loads, normalizes, and validates vodsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PEERTUBE_USERNAME and PEERTUBE_PASSWORD. The Config type centralizes every
// knob the CLI commands need, so data directories and external service
// credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
