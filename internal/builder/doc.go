// Package builder constructs the three-stage task graph for distributed
// execution: one stage-1 task per dataset, nb_resamplings stage-2 tasks
// fanned out from each stage-1 task, and one stage-3 task per dataset
// fanning in across all its stage-2 siblings.
//
// The builder never runs a job. It is a synchronous graph constructor whose
// only side effect is persisting tasks to obtain stable identities; true
// concurrency happens later, in the external execution substrate, bounded
// only by the prerequisite edges declared here.
package builder
