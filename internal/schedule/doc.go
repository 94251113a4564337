// Package schedule answers the question "which tasks may run now" for an
// external execution substrate, given the task graph and the statuses
// observed so far.
//
// The engine itself never executes anything and models no cancellation: a
// Failed upstream task simply never reaches Completed, leaving its
// downstream tasks in New indefinitely. Handling that is the caller's job.
package schedule
