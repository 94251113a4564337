package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/sparkpipego/internal/task"
)

func TestTaskStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put assigns an identity once", func(t *testing.T) {
		s := NewTaskStore()
		tk := &task.Task{Name: "tseries_boot_sub-01"}

		require.NoError(t, s.Put(ctx, tk))
		require.NotEmpty(t, tk.ID)

		id := tk.ID
		require.NoError(t, s.Put(ctx, tk))
		assert.Equal(t, id, tk.ID)
	})

	t.Run("get round-trips", func(t *testing.T) {
		s := NewTaskStore()
		tk := &task.Task{Name: "nkmap_sub-01"}
		require.NoError(t, s.Put(ctx, tk))

		got, ok := s.Get(ctx, tk.ID)
		require.True(t, ok)
		assert.Same(t, tk, got)

		_, ok = s.Get(ctx, "dne")
		assert.False(t, ok)
	})

	t.Run("status view defaults to New for unknown tasks", func(t *testing.T) {
		s := NewTaskStore()
		tk := &task.Task{Name: "kmdl_boot_sub-01_1", Status: task.StatusRunning}
		require.NoError(t, s.Put(ctx, tk))

		assert.Equal(t, task.StatusRunning, s.Status(tk.ID))
		assert.Equal(t, task.StatusNew, s.Status("dne"))
	})
}

func TestArtifactStore(t *testing.T) {
	ctx := context.Background()

	t.Run("find-or-create is idempotent on name and destination", func(t *testing.T) {
		s := NewArtifactStore()
		first, err := s.FindOrCreateArtifact(ctx, "sub-01-abc", "/results")
		require.NoError(t, err)
		second, err := s.FindOrCreateArtifact(ctx, "sub-01-abc", "/results")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, s.Artifacts())

		other, err := s.FindOrCreateArtifact(ctx, "sub-01-abc", "/elsewhere")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, other.ID)
		assert.Equal(t, 2, s.Artifacts())
	})

	t.Run("set path requires a known artifact", func(t *testing.T) {
		s := NewArtifactStore()
		a, err := s.FindOrCreateArtifact(ctx, "sub-01-abc", "/results")
		require.NoError(t, err)

		require.NoError(t, s.SetArtifactPath(ctx, a.ID, "/results/sub-01/sub-01-abc", "sub-01"))
		assert.Equal(t, "/results/sub-01/sub-01-abc", a.Path)
		assert.Equal(t, "sub-01", a.Dataset)

		assert.Error(t, s.SetArtifactPath(ctx, "dne", "/x", "sub-01"))
	})

	t.Run("provenance edges deduplicate", func(t *testing.T) {
		s := NewArtifactStore()
		a, err := s.FindOrCreateArtifact(ctx, "sub-01-abc", "/results")
		require.NoError(t, err)

		require.NoError(t, s.AddProvenance(ctx, "sub-01", a.ID))
		require.NoError(t, s.AddProvenance(ctx, "sub-01", a.ID))
		assert.Equal(t, []string{a.ID}, s.Provenance("sub-01"))
		assert.Empty(t, s.Provenance("sub-02"))

		assert.Error(t, s.AddProvenance(ctx, "sub-01", "dne"))
	})
}
