package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vk/sparkpipego/internal/config"
	"github.com/vk/sparkpipego/internal/job"
)

// Snapshot is the serialized pipeline definition: every job descriptor of
// the full pipeline, in order, plus the options they were built with. The
// full list is retained for provenance even when only one stage group is
// reloaded.
type Snapshot struct {
	Jobs    []job.Descriptor `yaml:"jobs"`
	Options config.Options   `yaml:"options"`
}

// Save writes the snapshot to the given path, creating parent directories
// as needed.
func Save(path string, s *Snapshot) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding pipeline snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing pipeline snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot back from the given path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline snapshot: %w", err)
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding pipeline snapshot %s: %w", path, err)
	}
	return &s, nil
}

// Store rebuilds the insertion-ordered descriptor store from the snapshot.
func (s *Snapshot) Store() (*job.Store, error) {
	return job.NewStore(s.Jobs...)
}

// LoadStage reloads a snapshot and resolves one stage group plus a
// selection expression against it, for resuming or partially re-running a
// single stage. Unknown stage ids fail with job.ErrInvalidStage and
// out-of-bounds indices with job.ErrIndexOutOfRange; nothing is mutated on
// failure.
func LoadStage(path, stageID, pattern string) (*job.Store, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	store, err := s.Store()
	if err != nil {
		return nil, err
	}
	group, err := job.Split(store).Stage(stageID)
	if err != nil {
		return nil, err
	}
	return job.Select(group, pattern)
}
