// Package config loads, normalizes, and validates subgauge configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SUBGAUGE_LOG_LEVEL environment
// fallback. The Config type gathers the bar glyphs, speed ranges, rating
// bands, state/log directories, and logging knobs in one place and converts
// them into the gauge, metrics, and rating types the rest of the module uses.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
