// Package config loads, normalizes, and validates tunevault configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TUNEVAULT_DATA_DIR environment
// override. The Config type names the storage kind, field separator and the
// four snapshot file names so the storage layer can be built in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
