package schedule

import (
	"github.com/gammazero/deque"

	"github.com/vk/sparkpipego/internal/graph"
	"github.com/vk/sparkpipego/internal/task"
)

// Ready returns, in the graph's insertion order, every task that is still
// New and whose prerequisite edges are all satisfied under the given status
// view. Prerequisite satisfaction is a monotone one-way gate, so a task
// reported ready stays ready until its own status changes.
func Ready(g *graph.Graph, status func(id string) task.Status) ([]*task.Task, error) {
	var pending deque.Deque[*task.Task]
	for _, t := range g.Tasks() {
		pending.PushBack(t)
	}

	var ready []*task.Task
	for pending.Len() > 0 {
		t := pending.PopFront()
		if status(t.ID) != task.StatusNew {
			continue
		}
		ok, err := g.Satisfied(t.ID, status)
		if err != nil {
			return nil, err
		}
		if ok {
			ready = append(ready, t)
		}
	}
	return ready, nil
}
