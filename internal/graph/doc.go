// Package graph holds the explicit task-graph structure: tasks keyed by
// identity plus their prerequisite edges as an adjacency structure.
//
// Keeping edges outside the task model lets cycle-freedom and prerequisite
// satisfaction be checked without touching task state. Listing order carries
// no execution guarantee; only edges do.
package graph
