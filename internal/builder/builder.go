package builder

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vk/sparkpipego/internal/config"
	"github.com/vk/sparkpipego/internal/ctxlog"
	"github.com/vk/sparkpipego/internal/registry"
	"github.com/vk/sparkpipego/internal/task"
)

// TaskStore persists tasks so they acquire a stable identity before any
// working directory or edge is derived from it.
type TaskStore interface {
	Put(ctx context.Context, t *task.Task) error
}

// Builder builds the task graph of one pipeline invocation. Each Builder
// carries its own run ID, so two builds of the same dataset never share a
// working directory.
type Builder struct {
	opts  config.Options
	reg   *registry.Registry
	tasks TaskStore
	runID string
}

// New creates a Builder over the given options, executable registry and
// task store.
func New(opts config.Options, reg *registry.Registry, tasks TaskStore) *Builder {
	return &Builder{
		opts:  opts,
		reg:   reg,
		tasks: tasks,
		runID: uuid.NewString(),
	}
}

// RunID returns the unique identifier of this build.
func (b *Builder) RunID() string {
	return b.runID
}

// BuildStage1 creates one stage-1 (bootstrap/setup) task per dataset. An
// absent or empty dataset list means a single implicit dataset taken from
// the ambient options. Each task is persisted first to obtain its identity,
// then its working directory is derived by appending "-" + task ID + run ID
// to the configured base output path, which guarantees no collision even
// across repeated runs of the same dataset.
//
// A dataset that cannot be built is logged and skipped; other datasets are
// unaffected.
func (b *Builder) BuildStage1(ctx context.Context, datasets []config.Dataset) ([]*task.Task, error) {
	logger := ctxlog.FromContext(ctx)

	if len(datasets) == 0 {
		datasets = []config.Dataset{b.opts.Dataset}
	}

	out := make([]*task.Task, 0, len(datasets))
	for _, ds := range datasets {
		if ds.Fmri == "" {
			logger.Error("dataset has no input reference, skipping its group.",
				"dataset", ds.Name)
			continue
		}
		name := ds.Name
		if name == "" {
			name = filepath.Base(ds.Fmri)
		}

		t := &task.Task{
			Name:    "tseries_boot_" + name,
			Group:   name,
			Stage:   task.StageSetup,
			Params:  b.opts,
			Input:   ds.Fmri,
			Verbose: b.opts.Verbose,
			Status:  task.StatusNew,
		}
		if err := b.tasks.Put(ctx, t); err != nil {
			logger.Error("failed to persist stage-1 task, skipping its group.",
				"dataset", name, "error", err)
			continue
		}
		t.WorkDir = filepath.Join(b.opts.OutDir, name) + "-" + t.ID + b.runID
		if err := b.tasks.Put(ctx, t); err != nil {
			return nil, fmt.Errorf("updating stage-1 task %s: %w", t.ID, err)
		}

		logger.Debug("stage-1 task created.",
			"task_id", t.ID, "dataset", name, "work_dir", t.WorkDir)
		out = append(out, t)
	}
	return out, nil
}

// BuildStage2 fans each stage-1 task out into exactly nb_resamplings
// stage-2 tasks, indexed 1..N inclusive. Every stage-2 task copies the
// stage-1 parameter snapshot, inherits the stage-1 working directory
// unchanged (shared group namespace, not re-derived) and the pass-through
// fields, and carries one prerequisite edge requiring the stage-1 task to
// reach Completed.
//
// If no stage-2 executable is registered the fan-out degrades to empty:
// a warning is logged, already-built upstream tasks are retained, and the
// caller must detect the truncation.
func (b *Builder) BuildStage2(ctx context.Context, stage1 []*task.Task) ([][]*task.Task, error) {
	logger := ctxlog.FromContext(ctx)

	if _, ok := b.reg.Lookup(task.StageRun); !ok {
		logger.Warn("no executable registered for stage 2; stage-2 task generation skipped, downstream stages will be empty.",
			"stage", task.StageRun, "stage1_tasks", len(stage1))
		return nil, nil
	}

	groups := make([][]*task.Task, 0, len(stage1))
	for _, s1 := range stage1 {
		n := s1.Params.NbResamplings
		group := make([]*task.Task, 0, n)
		for i := 1; i <= n; i++ {
			t := &task.Task{
				Name:       fmt.Sprintf("kmdl_boot_%s_%d", s1.Group, i),
				Group:      s1.Group,
				Stage:      task.StageRun,
				Resampling: i,
				Params:     s1.Params,
				WorkDir:    s1.WorkDir,
				Input:      s1.Input,
				Verbose:    s1.Verbose,
				Status:     task.StatusNew,
			}
			if err := b.tasks.Put(ctx, t); err != nil {
				return nil, fmt.Errorf("persisting stage-2 task %s: %w", t.Name, err)
			}
			t.RequiresCompleted(s1.ID)
			group = append(group, t)
		}
		logger.Debug("stage-2 group created.",
			"dataset", s1.Group, "resamplings", n)
		groups = append(groups, group)
	}
	return groups, nil
}

// BuildStage3 creates one stage-3 (aggregation) task per stage-2 group,
// inheriting parameters from the group's first member and sharing the
// group's working-directory namespace, with one prerequisite edge per
// sibling: the task is eligible only once every sibling is Completed.
//
// The same registration guard as BuildStage2 applies.
func (b *Builder) BuildStage3(ctx context.Context, groups [][]*task.Task) ([]*task.Task, error) {
	logger := ctxlog.FromContext(ctx)

	if _, ok := b.reg.Lookup(task.StageWrapup); !ok {
		logger.Warn("no executable registered for stage 3; stage-3 task generation skipped.",
			"stage", task.StageWrapup, "groups", len(groups))
		return nil, nil
	}

	out := make([]*task.Task, 0, len(groups))
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		first := group[0]
		t := &task.Task{
			Name:    "nkmap_" + first.Group,
			Group:   first.Group,
			Stage:   task.StageWrapup,
			Params:  first.Params,
			WorkDir: first.WorkDir,
			Input:   first.Input,
			Verbose: first.Verbose,
			Status:  task.StatusNew,
		}
		if err := b.tasks.Put(ctx, t); err != nil {
			return nil, fmt.Errorf("persisting stage-3 task %s: %w", t.Name, err)
		}
		for _, sibling := range group {
			t.RequiresCompleted(sibling.ID)
		}
		logger.Debug("stage-3 task created.",
			"task_id", t.ID, "dataset", t.Group, "fan_in", len(group))
		out = append(out, t)
	}
	return out, nil
}

// BuildPipeline runs the three stage builders in order and returns the
// concatenation: stage-1 tasks, then the stage-2 groups, then stage-3
// tasks. Listing order carries no execution guarantee; only the prerequisite
// edges do.
func (b *Builder) BuildPipeline(ctx context.Context, datasets []config.Dataset) ([]*task.Task, error) {
	stage1, err := b.BuildStage1(ctx, datasets)
	if err != nil {
		return nil, err
	}
	groups, err := b.BuildStage2(ctx, stage1)
	if err != nil {
		return nil, err
	}
	stage3, err := b.BuildStage3(ctx, groups)
	if err != nil {
		return nil, err
	}

	out := make([]*task.Task, 0, len(stage1))
	out = append(out, stage1...)
	for _, group := range groups {
		out = append(out, group...)
	}
	out = append(out, stage3...)
	return out, nil
}
