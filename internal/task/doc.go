// Package task defines the schedulable unit of the pipeline: one attempt of
// one job, together with its lifecycle status and the prerequisite edges that
// gate it.
//
// The engine only ever creates tasks in StatusNew with their edge set
// attached. All later transitions are observed from the external execution
// substrate, never caused here; CanTransition documents which observations
// are coherent.
package task
