// Package memstore provides ephemeral, thread-safe, in-memory
// implementations of the engine's persistence seams: the task store that
// hands out stable task identities, and the artifact/provenance store used
// by stage-3 result collection.
//
// Both are created fresh per session and keep everything in memory. For
// analyses whose state must survive a restart, a database-backed
// implementation of the same interfaces would be substituted.
package memstore
