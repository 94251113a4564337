package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, names ...string) *Store {
	t.Helper()
	s, err := NewStore()
	require.NoError(t, err)
	for i, name := range names {
		require.NoError(t, s.Add(Descriptor{Name: name, Stage: 1 + i%3}))
	}
	return s
}

func TestStoreAdd(t *testing.T) {
	s := testStore(t, "tseries_boot_sub-01")

	t.Run("duplicate names are rejected", func(t *testing.T) {
		err := s.Add(Descriptor{Name: "tseries_boot_sub-01"})
		assert.ErrorContains(t, err, "duplicate job name")
	})

	t.Run("empty names are rejected", func(t *testing.T) {
		err := s.Add(Descriptor{})
		assert.ErrorContains(t, err, "no name")
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		s := testStore(t, "nkmap_x", "tseries_boot_x", "kmdl_boot_x")
		assert.Equal(t, []string{"nkmap_x", "tseries_boot_x", "kmdl_boot_x"}, s.Names())
	})
}

func TestSplit(t *testing.T) {
	s := testStore(t,
		"tseries_boot_sub-01",
		"single_kmap_sub-01",
		"kmdl_boot_sub-01_1",
		"kmdl_boot_sub-01_2",
		"kmdl_Gx_sub-01",
		"nkmap_sub-01",
		"unrelated_job",
	)

	p := Split(s)

	t.Run("every matching name lands in exactly one group", func(t *testing.T) {
		assert.Equal(t, []string{"tseries_boot_sub-01", "single_kmap_sub-01"}, p.Setup.Names())
		assert.Equal(t, []string{"kmdl_boot_sub-01_1", "kmdl_boot_sub-01_2"}, p.Run.Names())
		assert.Equal(t, []string{"kmdl_Gx_sub-01", "nkmap_sub-01"}, p.Wrapup.Names())
	})

	t.Run("non-matching names land in no group", func(t *testing.T) {
		total := p.Setup.Len() + p.Run.Len() + p.Wrapup.Len()
		assert.Equal(t, s.Len()-1, total)
		for _, group := range []*Store{p.Setup, p.Run, p.Wrapup} {
			_, ok := group.Get("unrelated_job")
			assert.False(t, ok)
		}
	})

	t.Run("the full list stays in the source store", func(t *testing.T) {
		assert.Equal(t, 7, s.Len())
	})

	t.Run("splitting is deterministic and idempotent", func(t *testing.T) {
		again := Split(s)
		assert.Equal(t, p.Setup.Names(), again.Setup.Names())
		assert.Equal(t, p.Run.Names(), again.Run.Names())
		assert.Equal(t, p.Wrapup.Names(), again.Wrapup.Names())
	})
}

func TestPartitionStage(t *testing.T) {
	p := Split(testStore(t, "tseries_boot_x", "kmdl_boot_x", "nkmap_x"))

	t.Run("letter ids", func(t *testing.T) {
		for id, want := range map[string]string{"A": "tseries_boot_x", "B": "kmdl_boot_x", "C": "nkmap_x"} {
			group, err := p.Stage(id)
			require.NoError(t, err)
			assert.Equal(t, []string{want}, group.Names())
		}
	})

	t.Run("verb aliases", func(t *testing.T) {
		for _, id := range []string{"setup", "run", "wrapup", "wrap-up"} {
			_, err := p.Stage(id)
			assert.NoError(t, err, id)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := p.Stage("D")
		assert.ErrorIs(t, err, ErrInvalidStage)
	})
}
