// Package app wires the engine together: configuration, logger, executable
// registry, and the three user-facing commands (setup, run, wrapup).
package app
