// Package config loads, normalizes, and validates instinct configuration.
//
// It supplies defaults for the storage layout (a personal and an inherited
// root under the homunculus home directory), expands user paths including
// tilde shortcuts, reads TOML files, and honours the INSTINCT_HOME
// environment override. Storage roots are plain configuration so commands
// and tests can point the tool at any set of directories.
//
// Always obtain settings through this package so downstream code receives
// absolute paths and clear validation errors.
package config
