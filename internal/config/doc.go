// Package config loads, normalizes, and validates gif2webm configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads the optional TOML file. The Config type centralizes
// every knob the CLI needs: external tool binaries, encoder parallelism and
// quality, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
