// Package job holds the flat, read-only collection of named job descriptors
// of one pipeline, the fixed three-way stage partition over it, and the
// selection expressions used for partial re-runs.
package job
