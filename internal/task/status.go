package task

// Status is the lifecycle state of a task.
type Status int

const (
	// StatusNew means the task exists but has not been handed to the
	// execution substrate. A task with unmet prerequisite edges cannot
	// leave this state.
	StatusNew Status = iota
	// StatusQueued means the task has been submitted for execution.
	StatusQueued
	// StatusRunning means the execution substrate reports the task active.
	StatusRunning
	// StatusCompleted is the terminal success state.
	StatusCompleted
	// StatusFailed is the terminal failure state, until a restart.
	StatusFailed
	// StatusRecovering means a failed task is being prepared for a
	// restart. The restart reuses the same identity, parameter snapshot
	// and working directory.
	StatusRecovering
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusQueued:
		return "Queued"
	case StatusRunning:
		return "Running"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusRecovering:
		return "Recovering"
	default:
		return "Unknown"
	}
}

// transitions holds the legal status graph:
// New -> Queued -> Running -> {Completed | Failed};
// Failed -> Recovering -> Queued.
var transitions = map[Status][]Status{
	StatusNew:        {StatusQueued},
	StatusQueued:     {StatusRunning},
	StatusRunning:    {StatusCompleted, StatusFailed},
	StatusFailed:     {StatusRecovering},
	StatusRecovering: {StatusQueued},
}

// CanTransition reports whether an observed move from one status to another
// is coherent with the task lifecycle.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
