package result

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/sparkpipego/internal/ctxlog"
	"github.com/vk/sparkpipego/internal/task"
)

// Artifact is one registered output directory in the result hierarchy.
type Artifact struct {
	ID          string
	Name        string
	Destination string
	// Path is the artifact's location after relocation under its input
	// dataset in the result hierarchy.
	Path string
	// Dataset is the group whose input produced this artifact.
	Dataset string
}

// ArtifactStore is the durable result/provenance store. FindOrCreateArtifact
// must be idempotent on (name, destination); AddProvenance must deduplicate
// edges.
type ArtifactStore interface {
	FindOrCreateArtifact(ctx context.Context, name, destination string) (*Artifact, error)
	SetArtifactPath(ctx context.Context, id, path, dataset string) error
	AddProvenance(ctx context.Context, dataset, artifactID string) error
}

// Collect ingests a Completed stage-3 task's output directory into the
// store: the directory is registered as an artifact under the resolved
// destination (explicit per-task override, else the output base owning the
// input dataset), relocated under the input dataset in the result hierarchy,
// and linked to the dataset by a provenance edge.
//
// Intermediate stages explicitly skip ingestion: Collect returns (nil, nil)
// for stage-1 and stage-2 tasks. Repeated invocation on the same task
// finds-or-creates and never duplicates.
func Collect(ctx context.Context, t *task.Task, store ArtifactStore) (*Artifact, error) {
	logger := ctxlog.FromContext(ctx)

	if t.Stage != task.StageWrapup {
		logger.Debug("skipping ingestion for intermediate stage task.",
			"task_id", t.ID, "stage", t.Stage)
		return nil, nil
	}
	if t.Status != task.StatusCompleted {
		return nil, fmt.Errorf("task %s is %s, only Completed stage-3 tasks are collected", t.ID, t.Status)
	}

	destination := t.Destination
	if destination == "" {
		destination = t.Params.OutDir
	}

	name := filepath.Base(t.WorkDir)
	artifact, err := store.FindOrCreateArtifact(ctx, name, destination)
	if err != nil {
		return nil, fmt.Errorf("registering artifact %q: %w", name, err)
	}

	relocated := filepath.Join(destination, t.Group, name)
	if err := store.SetArtifactPath(ctx, artifact.ID, relocated, t.Group); err != nil {
		return nil, fmt.Errorf("relocating artifact %q: %w", name, err)
	}
	artifact.Path = relocated
	artifact.Dataset = t.Group

	if err := store.AddProvenance(ctx, t.Group, artifact.ID); err != nil {
		return nil, fmt.Errorf("recording provenance for artifact %q: %w", name, err)
	}

	logger.Info("stage-3 output collected.",
		"task_id", t.ID, "artifact", name, "path", relocated, "dataset", t.Group)
	return artifact, nil
}
