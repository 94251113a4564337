// Package registry maps pipeline stages to the external executables that run
// their jobs, together with each executable's environment configuration.
//
// A missing registration is recoverable at graph-build time: the builder logs
// it and degrades that stage's task list to empty rather than failing the
// whole call. Callers must detect the truncation.
package registry
