package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/vk/sparkpipego/internal/builder"
	"github.com/vk/sparkpipego/internal/ctxlog"
	"github.com/vk/sparkpipego/internal/job"
	"github.com/vk/sparkpipego/internal/memstore"
	"github.com/vk/sparkpipego/internal/optfile"
	"github.com/vk/sparkpipego/internal/registry"
	"github.com/vk/sparkpipego/internal/result"
	"github.com/vk/sparkpipego/internal/snapshot"
	"github.com/vk/sparkpipego/internal/task"
)

// Run executes the requested command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	switch a.cfg.Command {
	case "setup":
		return a.runSetup(ctx)
	case "run":
		return a.runStage(ctx)
	case "wrapup":
		return a.runWrapup(ctx)
	default:
		// NewConfig already rejected anything else.
		return fmt.Errorf("unknown command %q", a.cfg.Command)
	}
}

// runSetup loads the option file, builds the full three-stage task graph for
// every declared dataset, and persists the pipeline snapshot.
func (a *App) runSetup(ctx context.Context) error {
	opts, datasets, err := optfile.Load(ctx, a.cfg.OptFile)
	if err != nil {
		return err
	}

	tasks := memstore.NewTaskStore()
	b := builder.New(opts, a.registry, tasks)
	built, err := b.BuildPipeline(ctx, datasets)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}
	g, err := builder.Assemble(built)
	if err != nil {
		return err
	}
	a.logger.Info("task graph built.",
		"run_id", b.RunID(), "datasets", len(datasets), "tasks", g.Len())

	descriptors := make([]job.Descriptor, 0, len(built))
	for _, t := range built {
		descriptors = append(descriptors, describe(t, a.registry))
	}

	snapPath := a.snapshotPath(opts.PipeFile, opts.OutDir)
	if err := snapshot.Save(snapPath, &snapshot.Snapshot{Jobs: descriptors, Options: opts}); err != nil {
		return err
	}
	a.logger.Info("pipeline snapshot saved.", "path", snapPath)

	fmt.Fprintf(a.outW, "pipeline: %d dataset(s), %d task(s), snapshot %s\n",
		len(datasets), len(built), snapPath)
	return nil
}

// runStage reloads one stage group from the snapshot, narrowed by the
// selection expression, and emits its job list for external execution.
func (a *App) runStage(ctx context.Context) error {
	group, err := snapshot.LoadStage(a.cfg.SnapshotPath, a.cfg.StageID, a.cfg.Selection)
	if err != nil {
		return err
	}
	a.logger.Info("stage group resolved.",
		"stage", a.cfg.StageID, "selection", a.cfg.Selection, "jobs", group.Len())

	for _, d := range group.Descriptors() {
		fmt.Fprintf(a.outW, "%s\t%s\n", d.Name, d.Command)
	}
	return nil
}

// runWrapup validates the exit-status artifact of every stage-3 job in the
// snapshot and collects completed outputs into the result store.
func (a *App) runWrapup(ctx context.Context) error {
	snap, err := snapshot.Load(a.cfg.SnapshotPath)
	if err != nil {
		return err
	}
	store, err := snap.Store()
	if err != nil {
		return err
	}
	group, err := job.Split(store).Stage("C")
	if err != nil {
		return err
	}

	artifacts := memstore.NewArtifactStore()
	var completed, failed int
	for _, d := range group.Descriptors() {
		t := taskFromDescriptor(d, snap)
		if err := result.Validate(t); err != nil {
			failed++
			a.logger.Warn("stage-3 task failed validation.",
				"job", d.Name, "error", err)
			continue
		}
		if t.Status != task.StatusCompleted {
			failed++
			a.logger.Warn("stage-3 task reported a failure code.", "job", d.Name)
			continue
		}
		if _, err := result.Collect(ctx, t, artifacts); err != nil {
			return fmt.Errorf("collecting %s: %w", d.Name, err)
		}
		completed++
	}

	fmt.Fprintf(a.outW, "wrap-up: %d collected, %d failed\n", completed, failed)
	if failed > 0 {
		return errors.New("one or more stage-3 tasks did not complete")
	}
	return nil
}

// snapshotPath resolves where the pipeline snapshot lives: the explicit
// flag, else the option file's pipe_file entry, else a fixed location under
// the output base.
func (a *App) snapshotPath(pipeFile, outDir string) string {
	if a.cfg.SnapshotPath != "" {
		return a.cfg.SnapshotPath
	}
	if pipeFile != "" {
		return pipeFile
	}
	return filepath.Join(outDir, "pipelines", "pipeline.yaml")
}

var stageVerbs = map[int]string{
	task.StageSetup:  "setup",
	task.StageRun:    "run",
	task.StageWrapup: "wrapup",
}

// describe converts a built task into its job descriptor for the snapshot.
// The task's working directory and identity travel in the options map so a
// later wrap-up invocation can find the terminal artifacts.
func describe(t *task.Task, reg *registry.Registry) job.Descriptor {
	command := ""
	if exe, ok := reg.Lookup(t.Stage); ok {
		command = exe.Path + " " + stageVerbs[t.Stage]
	}
	d := job.Descriptor{
		Name:    t.Name,
		Stage:   t.Stage,
		Command: command,
		Inputs:  map[string]string{"fmri": t.Input, "mask": t.Params.Mask},
		Outputs: map[string]string{"work_dir": t.WorkDir},
		Options: map[string]string{
			"task_id": t.ID,
			"group":   t.Group,
		},
	}
	if t.Stage == task.StageRun {
		d.Options["resampling"] = strconv.Itoa(t.Resampling)
	}
	return d
}

// taskFromDescriptor reconstructs the terminal-artifact view of a job from
// its snapshot descriptor.
func taskFromDescriptor(d job.Descriptor, snap *snapshot.Snapshot) *task.Task {
	return &task.Task{
		ID:      d.Options["task_id"],
		Name:    d.Name,
		Group:   d.Options["group"],
		Stage:   d.Stage,
		Params:  snap.Options,
		WorkDir: d.Outputs["work_dir"],
		Input:   d.Inputs["fmri"],
		Status:  task.StatusRunning,
	}
}
