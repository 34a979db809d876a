package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQwertyLayoutGeometry(t *testing.T) {
	layout := NewQwertyLayout()
	assert.Equal(t, 26, layout.Len())

	for _, ch := range "qwertyuiopasdfghjklzxcvbnm" {
		key, ok := layout.Get(ch)
		require.True(t, ok, "key %q missing", ch)
		assert.InDelta(t, 0.5, key.X, 0.5, "x stays within [0,1]")
		assert.InDelta(t, 0.5, key.Y, 0.5, "y stays within [0,1]")
		assert.Greater(t, key.Radius, 0.0)
	}

	q, _ := layout.Get('q')
	p, _ := layout.Get('p')
	assert.Less(t, q.X, p.X, "q sits left of p")
	a, _ := layout.Get('a')
	z, _ := layout.Get('z')
	assert.Less(t, q.Y, a.Y)
	assert.Less(t, a.Y, z.Y)
}

func TestNearestSnapsToKeyCenters(t *testing.T) {
	layout := NewQwertyLayout()
	for _, ch := range "qazplm" {
		key, _ := layout.Get(ch)
		nearest, ok := layout.Nearest(key.X+0.01, key.Y-0.01)
		require.True(t, ok)
		assert.Equal(t, ch, nearest.Char)
	}
}

func TestRowCharRegionLookup(t *testing.T) {
	layout := NewQwertyLayout()

	ch, ok := layout.RowChar(0.0, 0.0)
	require.True(t, ok)
	assert.Equal(t, 'q', ch)

	ch, _ = layout.RowChar(1.0, 0.99)
	assert.Equal(t, 'm', ch)

	// Out-of-range samples clamp instead of failing.
	ch, ok = layout.RowChar(-0.5, 2.0)
	require.True(t, ok)
	assert.Equal(t, 'z', ch)
}

func TestDistanceUnknownCharPenalized(t *testing.T) {
	layout := NewQwertyLayout()
	assert.Equal(t, 1.0, layout.Distance('q', 'é'))
	assert.Zero(t, layout.Distance('q', 'q'))
	assert.Greater(t, layout.Distance('q', 'p'), layout.Distance('q', 'w'))
}
