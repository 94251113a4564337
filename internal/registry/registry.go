package registry

import (
	"fmt"
	"sync"

	"github.com/vk/sparkpipego/internal/task"
)

// Executable is one registered external tool: the path of the standalone
// application plus the environment it expects.
type Executable struct {
	Path string
	Env  map[string]string
}

// Registry holds the per-stage executable registrations for a single
// application instance.
type Registry struct {
	mu      sync.RWMutex
	byStage map[int]Executable
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{byStage: make(map[int]Executable)}
}

// Register records the executable for a stage, replacing any previous
// registration. The stage must be one of the three pipeline stages.
func (r *Registry) Register(stage int, exe Executable) error {
	if stage < task.StageSetup || stage > task.StageWrapup {
		return fmt.Errorf("unknown stage id: %d", stage)
	}
	if exe.Path == "" {
		return fmt.Errorf("stage %d: executable path is empty", stage)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byStage[stage] = exe
	return nil
}

// Lookup returns the executable registered for a stage. Absence is not an
// error; see the package comment.
func (r *Registry) Lookup(stage int) (Executable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exe, ok := r.byStage[stage]
	return exe, ok
}

// RegisterAll registers the same executable for every stage. The SPARK
// standalone application serves all three stages with different verbs, so
// this is the common seeding path.
func (r *Registry) RegisterAll(exe Executable) error {
	for stage := task.StageSetup; stage <= task.StageWrapup; stage++ {
		if err := r.Register(stage, exe); err != nil {
			return err
		}
	}
	return nil
}
