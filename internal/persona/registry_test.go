package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistrySpeakingOrder(t *testing.T) {
	reg := DefaultRegistry()
	require.Equal(t, 5, reg.Len())

	var ids []ID
	for _, p := range reg.All() {
		ids = append(ids, p.ID())
	}
	assert.Equal(t, []ID{
		Director,
		Cinematographer,
		Editor,
		SoundDesigner,
		PlatformStrategist,
	}, ids)
}

func TestRegistryGet(t *testing.T) {
	reg := DefaultRegistry()

	p, err := reg.Get(Editor)
	require.NoError(t, err)
	assert.Equal(t, Editor, p.ID())
	assert.Equal(t, "Priya Raman", p.DisplayName())

	_, err = reg.Get("gaffer")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryAllReturnsCopy(t *testing.T) {
	reg := DefaultRegistry()
	all := reg.All()
	all[0] = all[1]

	assert.Equal(t, Director, reg.All()[0].ID())
}
