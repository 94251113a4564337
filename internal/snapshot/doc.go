// Package snapshot persists a pipeline definition (the flat job collection
// plus the global options) to a YAML file, and reloads it by stage id and
// selection expression so a subset can be resumed or re-run.
package snapshot
