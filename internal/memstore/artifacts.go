package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vk/sparkpipego/internal/result"
)

// ArtifactStore is an in-memory implementation of result.ArtifactStore.
// Artifacts are keyed by (name, destination) so repeated registration of the
// same output finds the existing record; provenance edges are a set.
type ArtifactStore struct {
	mu        sync.Mutex
	byKey     map[string]*result.Artifact
	byID      map[string]*result.Artifact
	provEdges map[string]bool // Key: dataset + "\x00" + artifact ID
}

// NewArtifactStore creates a new, empty in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		byKey:     make(map[string]*result.Artifact),
		byID:      make(map[string]*result.Artifact),
		provEdges: make(map[string]bool),
	}
}

func artifactKey(name, destination string) string {
	return name + "\x00" + destination
}

// FindOrCreateArtifact implements result.ArtifactStore.
func (s *ArtifactStore) FindOrCreateArtifact(ctx context.Context, name, destination string) (*result.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := artifactKey(name, destination)
	if a, ok := s.byKey[key]; ok {
		return a, nil
	}
	a := &result.Artifact{
		ID:          uuid.NewString(),
		Name:        name,
		Destination: destination,
	}
	s.byKey[key] = a
	s.byID[a.ID] = a
	return a, nil
}

// SetArtifactPath implements result.ArtifactStore.
func (s *ArtifactStore) SetArtifactPath(ctx context.Context, id, path, dataset string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown artifact: %s", id)
	}
	a.Path = path
	a.Dataset = dataset
	return nil
}

// AddProvenance implements result.ArtifactStore.
func (s *ArtifactStore) AddProvenance(ctx context.Context, dataset, artifactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[artifactID]; !ok {
		return fmt.Errorf("unknown artifact: %s", artifactID)
	}
	s.provEdges[dataset+"\x00"+artifactID] = true
	return nil
}

// Provenance returns the artifact IDs linked to the given dataset.
func (s *ArtifactStore) Provenance(dataset string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	prefix := dataset + "\x00"
	for key := range s.provEdges {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, key[len(prefix):])
		}
	}
	return out
}

// Artifacts returns the number of registered artifacts.
func (s *ArtifactStore) Artifacts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Ensure ArtifactStore implements result.ArtifactStore.
var _ result.ArtifactStore = (*ArtifactStore)(nil)
