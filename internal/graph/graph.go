package graph

import (
	"fmt"
	"sync"

	"github.com/vk/sparkpipego/internal/task"
)

// Graph is a collection of tasks and their prerequisite edges, representing
// a DAG. All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the node map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all tasks in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order remembers insertion order for deterministic listings.
	order []string
}

// node is a single vertex. It is un-exported to enforce interaction with
// the graph via the public API (using task IDs), not by direct struct
// manipulation.
type node struct {
	task *task.Task
	// deps holds the tasks this node requires (predecessors).
	deps map[string]*node
	// dependents holds the tasks that require this node (successors).
	dependents map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddTask adds a task to the graph. The task must carry a non-empty ID and
// must not already be present.
func (g *Graph) AddTask(t *task.Task) error {
	if t.ID == "" {
		return fmt.Errorf("task %q has no identity", t.Name)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[t.ID]; ok {
		return fmt.Errorf("duplicate task: %s", t.ID)
	}
	g.nodes[t.ID] = &node{
		task:       t,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
	g.order = append(g.order, t.ID)
	return nil
}

// AddEdge records that `dependentID` requires `requiredID` to reach
// Completed. An error is returned if either task does not exist or if the
// edge would be self-referential.
func (g *Graph) AddEdge(requiredID, dependentID string) error {
	if requiredID == dependentID {
		return fmt.Errorf("self-referential edge not allowed: %s", requiredID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	required, ok := g.nodes[requiredID]
	if !ok {
		return fmt.Errorf("required task not found: %s", requiredID)
	}
	dependent, ok := g.nodes[dependentID]
	if !ok {
		return fmt.Errorf("dependent task not found: %s", dependentID)
	}

	dependent.deps[requiredID] = required
	required.dependents[dependentID] = dependent
	return nil
}

// Task returns the task with the given ID.
func (g *Graph) Task(id string) (*task.Task, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return n.task, true
}

// Tasks returns all tasks in insertion order.
func (g *Graph) Tasks() []*task.Task {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]*task.Task, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].task)
	}
	return out
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// Dependencies returns the IDs of the tasks the given task requires.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	deps := make([]string, 0, len(n.deps))
	for depID := range n.deps {
		deps = append(deps, depID)
	}
	return deps, nil
}

// Dependents returns the IDs of the tasks that require the given task.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	dependents := make([]string, 0, len(n.dependents))
	for depID := range n.dependents {
		dependents = append(dependents, depID)
	}
	return dependents, nil
}

// Satisfied reports whether every prerequisite edge of the given task is met
// under the supplied status view. Satisfaction is a monotone one-way gate:
// once every required task has been observed Completed the task stays
// eligible.
func (g *Graph) Satisfied(id string, status func(id string) task.Status) (bool, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return false, fmt.Errorf("task not found: %s", id)
	}
	for depID := range n.deps {
		if status(depID) != task.StatusCompleted {
			return false, nil
		}
	}
	return true, nil
}

// DetectCycles checks the graph for cycles. It returns a non-nil error if a
// cycle is found, naming the first task involved.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with a permanent set of fully visited
	// nodes and a temporary set holding the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.task.ID] {
			return nil
		}
		if temporary[n.task.ID] {
			return fmt.Errorf("cycle detected involving task '%s'", n.task.ID)
		}
		temporary[n.task.ID] = true
		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n.task.ID)
		permanent[n.task.ID] = true
		return nil
	}

	for _, n := range g.nodes {
		if !permanent[n.task.ID] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
