// Package config loads, normalizes, and validates tvhshrink configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TVHEADEND_URL. The Config type centralizes every knob the CLI needs, so
// registry credentials, tool binaries, and scratch directories are discovered
// in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
