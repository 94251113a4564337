package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/sparkpipego/internal/task"
)

func addTask(t *testing.T, g *Graph, id string) *task.Task {
	t.Helper()
	tk := &task.Task{ID: id, Name: id}
	require.NoError(t, g.AddTask(tk))
	return tk
}

func TestAddTask(t *testing.T) {
	g := New()
	addTask(t, g, "a")

	t.Run("duplicates are rejected", func(t *testing.T) {
		err := g.AddTask(&task.Task{ID: "a"})
		assert.ErrorContains(t, err, "duplicate task")
	})

	t.Run("missing identity is rejected", func(t *testing.T) {
		err := g.AddTask(&task.Task{Name: "no-id"})
		assert.ErrorContains(t, err, "no identity")
	})

	t.Run("listing preserves insertion order", func(t *testing.T) {
		addTask(t, g, "b")
		addTask(t, g, "c")
		var ids []string
		for _, tk := range g.Tasks() {
			ids = append(ids, tk.ID)
		}
		assert.Equal(t, []string{"a", "b", "c"}, ids)
	})
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		addTask(t, g, "a")
		addTask(t, g, "b")

		require.NoError(t, g.AddEdge("a", "b")) // b requires a

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		addTask(t, g, "a")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "required task not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "dependent task not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestSatisfied(t *testing.T) {
	g := New()
	addTask(t, g, "up1")
	addTask(t, g, "up2")
	addTask(t, g, "down")
	require.NoError(t, g.AddEdge("up1", "down"))
	require.NoError(t, g.AddEdge("up2", "down"))

	statuses := map[string]task.Status{}
	view := func(id string) task.Status { return statuses[id] }

	t.Run("unmet edges gate the task", func(t *testing.T) {
		ok, err := g.Satisfied("down", view)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("one of two completed is not enough", func(t *testing.T) {
		statuses["up1"] = task.StatusCompleted
		ok, err := g.Satisfied("down", view)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("a failed upstream never satisfies", func(t *testing.T) {
		statuses["up2"] = task.StatusFailed
		ok, err := g.Satisfied("down", view)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("all completed opens the gate", func(t *testing.T) {
		statuses["up2"] = task.StatusCompleted
		ok, err := g.Satisfied("down", view)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown task errors", func(t *testing.T) {
		_, err := g.Satisfied("dne", view)
		assert.ErrorContains(t, err, "task not found")
	})

	t.Run("a task with no edges is always satisfied", func(t *testing.T) {
		ok, err := g.Satisfied("up1", view)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		addTask(t, g, "a")
		addTask(t, g, "b")
		addTask(t, g, "c")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("direct cycle is detected", func(t *testing.T) {
		g := New()
		addTask(t, g, "a")
		addTask(t, g, "b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))
		assert.ErrorContains(t, g.DetectCycles(), "cycle detected")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		addTask(t, g, "a")
		addTask(t, g, "b")
		require.NoError(t, g.AddEdge("a", "b"))

		addTask(t, g, "x")
		addTask(t, g, "y")
		addTask(t, g, "z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y"))

		assert.ErrorContains(t, g.DetectCycles(), "cycle detected")
	})
}
