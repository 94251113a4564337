package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	group := testStore(t,
		"tseries_boot_a",
		"single_kmap_a",
		"kmdl_boot_a_1",
		"kmdl_boot_a_2",
		"nkmap_a",
	)

	t.Run("index mode selects only the listed indices", func(t *testing.T) {
		out, err := Select(group, "3;")
		require.NoError(t, err)
		assert.Equal(t, []string{"kmdl_boot_a_2"}, out.Names())
	})

	t.Run("index mode preserves original ordering", func(t *testing.T) {
		out, err := Select(group, "4;0;2;")
		require.NoError(t, err)
		assert.Equal(t, []string{"tseries_boot_a", "kmdl_boot_a_1", "nkmap_a"}, out.Names())
	})

	t.Run("comma and space separators are accepted", func(t *testing.T) {
		out, err := Select(group, "0, 1;")
		require.NoError(t, err)
		assert.Equal(t, []string{"tseries_boot_a", "single_kmap_a"}, out.Names())
	})

	t.Run("out-of-bounds index is rejected, nothing mutated", func(t *testing.T) {
		_, err := Select(group, "5;")
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, 5, group.Len())

		_, err = Select(group, "-1;")
		assert.Error(t, err)
	})

	t.Run("substring mode keeps every matching name", func(t *testing.T) {
		out, err := Select(group, "km")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"single_kmap_a",
			"kmdl_boot_a_1",
			"kmdl_boot_a_2",
			"nkmap_a",
		}, out.Names())
	})

	t.Run("empty pattern keeps all", func(t *testing.T) {
		out, err := Select(group, "")
		require.NoError(t, err)
		assert.Equal(t, group.Names(), out.Names())
	})

	t.Run("non-numeric index list is rejected", func(t *testing.T) {
		_, err := Select(group, "boot;")
		assert.ErrorContains(t, err, "invalid job index")
	})
}
