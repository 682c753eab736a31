package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/espalier/pkg/tree"
)

func TestRegistry_GetOrCreateIsIdempotent(t *testing.T) {
	reg := tree.NewRegistry()

	first := reg.GetOrCreate("align")
	second := reg.GetOrCreate("align")

	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ReplaceDiscardsInstance(t *testing.T) {
	reg := tree.NewRegistry()

	old := reg.GetOrCreate("align")
	fresh := reg.Replace("align")

	assert.NotSame(t, old, fresh)
	got, ok := reg.Get("align")
	assert.True(t, ok)
	assert.Same(t, fresh, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_RootsKeepFirstSeenOrder(t *testing.T) {
	reg := tree.NewRegistry()

	reg.GetOrCreate("c")
	reg.GetOrCreate("a")
	b := reg.GetOrCreate("b")
	b.SetParent(reg.GetOrCreate("a"))

	// Replacing an existing name must not move it to the back.
	reg.Replace("c")

	roots := reg.Roots()
	names := make([]string, len(roots))
	for i, r := range roots {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"c", "a"}, names)
}
