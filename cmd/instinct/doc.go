// Package main hosts the instinct CLI entrypoint and command graph.
//
// The Cobra-based command tree inspects, imports, and exports instinct
// collections and scaffolds configuration. It centralizes configuration
// resolution and structured logging setup so subcommands only translate
// flags into workflow requests from internal/api and render the results.
//
// Keep this package lean: add new behavior to the internal packages first,
// then surface it through dedicated commands or flags here.
package main
