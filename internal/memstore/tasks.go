package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vk/sparkpipego/internal/task"
)

// TaskStore is an in-memory task store using sync.Map for fine-grained
// concurrent access without global lock contention. Putting a task without
// an ID assigns it a fresh one; that identity is stable for the life of the
// store and survives restarts of the task itself (Failed -> Recovering ->
// Queued reuses the same record).
type TaskStore struct {
	tasks sync.Map // Key: task ID string, Value: *task.Task
}

// NewTaskStore creates a new, empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// Put persists the task, assigning a unique identity if it has none.
func (s *TaskStore) Put(ctx context.Context, t *task.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.tasks.Store(t.ID, t)
	return nil
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(ctx context.Context, id string) (*task.Task, bool) {
	v, ok := s.tasks.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*task.Task), true
}

// Status returns the stored status of a task, or StatusNew when the task is
// unknown. The signature matches the status view taken by graph.Satisfied.
func (s *TaskStore) Status(id string) task.Status {
	t, ok := s.Get(context.Background(), id)
	if !ok {
		return task.StatusNew
	}
	return t.Status
}
