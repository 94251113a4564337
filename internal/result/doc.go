// Package result consumes externally-produced execution outcomes: it
// classifies a terminal task as Completed or Failed from its exit-status
// artifact, and ingests stage-3 output into durable storage with a
// provenance link back to the input dataset.
package result
