package task

import "github.com/vk/sparkpipego/internal/config"

// Stage identifiers of the fixed three-stage topology.
const (
	StageSetup  = 1 // bootstrap/resample the input data
	StageRun    = 2 // one independent computation per resampling
	StageWrapup = 3 // aggregate all resampling results
)

// Edge is a declared ordering constraint: the dependent task may not start
// until the required task has reached the required status. The required
// status is always StatusCompleted in this engine; the field exists so that
// satisfaction checks stay independent of the task model.
type Edge struct {
	TaskID         string `yaml:"task_id"`
	RequiresID     string `yaml:"requires_id"`
	RequiredStatus Status `yaml:"required_status"`
}

// Task wraps one job descriptor for one attempt. Params is a value copy made
// at creation time; WorkDir is fixed at creation and never reused across
// dataset groups.
type Task struct {
	ID    string
	Name  string
	Group string // owning dataset group (dataset name)
	Stage int

	// Resampling is the 1-based resampling index. It is only meaningful
	// for stage-2 tasks and zero otherwise.
	Resampling int

	Params  config.Options
	WorkDir string
	Input   string
	Verbose bool

	// Destination optionally overrides where stage-3 output is ingested.
	Destination string

	Status   Status
	Requires []Edge
}

// RequiresCompleted appends a prerequisite edge on the given task ID,
// required status Completed.
func (t *Task) RequiresCompleted(requiredID string) {
	t.Requires = append(t.Requires, Edge{
		TaskID:         t.ID,
		RequiresID:     requiredID,
		RequiredStatus: StatusCompleted,
	})
}
