package builder

import (
	"fmt"

	"github.com/vk/sparkpipego/internal/graph"
	"github.com/vk/sparkpipego/internal/task"
)

// Assemble turns a flat task list into a Graph: every task becomes a node
// and every prerequisite edge an adjacency entry. The assembled graph is
// checked for cycles before being returned.
func Assemble(tasks []*task.Task) (*graph.Graph, error) {
	g := graph.New()
	for _, t := range tasks {
		if err := g.AddTask(t); err != nil {
			return nil, err
		}
	}
	for _, t := range tasks {
		for _, edge := range t.Requires {
			if err := g.AddEdge(edge.RequiresID, t.ID); err != nil {
				return nil, fmt.Errorf("edge for task %s: %w", t.ID, err)
			}
		}
	}
	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating task graph: %w", err)
	}
	return g, nil
}
