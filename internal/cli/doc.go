// Package cli parses command-line arguments into an app.Config and owns the
// process exit-code conventions.
package cli
