package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	id   int
	next *node
}

func TestAllocAndNew(t *testing.T) {
	var a Arena[node]

	first := a.Alloc()
	assert.Equal(t, 0, first.id, "Alloc must return a zeroed slot")

	second := a.New(node{id: 7})
	assert.Equal(t, 7, second.id)
	assert.Equal(t, 2, a.Len())
}

// Pointers handed out earlier must survive chunk growth.
func TestPointerStabilityAcrossGrowth(t *testing.T) {
	var a Arena[node]

	ptrs := make([]*node, 0, defaultChunkSize*3)
	for i := 0; i < defaultChunkSize*3; i++ {
		ptrs = append(ptrs, a.New(node{id: i}))
	}
	require.Equal(t, defaultChunkSize*3, a.Len())

	for i, p := range ptrs {
		assert.Equal(t, i, p.id)
	}
}

func TestReset(t *testing.T) {
	var a Arena[node]

	for i := 0; i < 10; i++ {
		a.Alloc()
	}
	require.Equal(t, 10, a.Len())

	a.Reset()
	assert.Zero(t, a.Len())

	fresh := a.Alloc()
	assert.Equal(t, 0, fresh.id)
	assert.Equal(t, 1, a.Len())
}
