package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/sparkpipego/internal/builder"
	"github.com/vk/sparkpipego/internal/config"
	"github.com/vk/sparkpipego/internal/graph"
	"github.com/vk/sparkpipego/internal/memstore"
	"github.com/vk/sparkpipego/internal/registry"
	"github.com/vk/sparkpipego/internal/task"
)

func testPipeline(t *testing.T) *graph.Graph {
	t.Helper()

	opts := config.Default().WithResamplings(3)
	opts.OutDir = t.TempDir()
	opts.Mask = "/data/mask.nii"

	reg := registry.New()
	require.NoError(t, reg.RegisterAll(registry.Executable{Path: "/opt/spark_samapp"}))

	datasets := []config.Dataset{
		{Name: "sub-01_bold", Fmri: "/data/sub-01_bold.nii"},
		{Name: "sub-02_bold", Fmri: "/data/sub-02_bold.nii"},
	}
	tasks, err := builder.New(opts, reg, memstore.NewTaskStore()).
		BuildPipeline(context.Background(), datasets)
	require.NoError(t, err)

	g, err := builder.Assemble(tasks)
	require.NoError(t, err)
	return g
}

func TestReady(t *testing.T) {
	g := testPipeline(t)
	statuses := map[string]task.Status{}
	view := func(id string) task.Status { return statuses[id] }

	complete := func(tasks []*task.Task) {
		for _, tk := range tasks {
			statuses[tk.ID] = task.StatusCompleted
		}
	}

	// Fresh graph: only the stage-1 tasks have no unmet edges.
	wave1, err := Ready(g, view)
	require.NoError(t, err)
	require.Len(t, wave1, 2)
	for _, tk := range wave1 {
		assert.Equal(t, task.StageSetup, tk.Stage)
	}

	// Stage-1 done: all six stage-2 tasks across both datasets open up.
	complete(wave1)
	wave2, err := Ready(g, view)
	require.NoError(t, err)
	require.Len(t, wave2, 6)
	for _, tk := range wave2 {
		assert.Equal(t, task.StageRun, tk.Stage)
	}

	// Completing one dataset's siblings releases only its stage-3 task.
	group := wave2[0].Group
	var siblings, others []*task.Task
	for _, tk := range wave2 {
		if tk.Group == group {
			siblings = append(siblings, tk)
		} else {
			others = append(others, tk)
		}
	}
	complete(siblings)

	wave3, err := Ready(g, view)
	require.NoError(t, err)
	// The other dataset's three stage-2 tasks are still New and ready.
	require.Len(t, wave3, 4)
	var fanIn *task.Task
	for _, tk := range wave3 {
		if tk.Stage == task.StageWrapup {
			require.Nil(t, fanIn, "more than one stage-3 task released")
			fanIn = tk
		}
	}
	require.NotNil(t, fanIn)
	assert.Equal(t, group, fanIn.Group)

	// Finishing everything leaves nothing ready.
	complete(others)
	complete(wave3)
	for _, tk := range g.Tasks() {
		if statuses[tk.ID] == task.StatusNew {
			statuses[tk.ID] = task.StatusCompleted
		}
	}
	empty, err := Ready(g, view)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReadySkipsNonNewTasks(t *testing.T) {
	g := testPipeline(t)
	statuses := map[string]task.Status{}

	wave, err := Ready(g, func(id string) task.Status { return statuses[id] })
	require.NoError(t, err)
	require.NotEmpty(t, wave)

	// A stage-1 task that already failed must not be offered again.
	statuses[wave[0].ID] = task.StatusFailed
	again, err := Ready(g, func(id string) task.Status { return statuses[id] })
	require.NoError(t, err)
	assert.Len(t, again, len(wave)-1)
}
