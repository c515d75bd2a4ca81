package bvh

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyhull/collide/config"
	"github.com/polyhull/collide/math32"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) math32.Box3 {
	return math32.Box3{
		Min: math32.Vector3{X: minX, Y: minY, Z: minZ},
		Max: math32.Vector3{X: maxX, Y: maxY, Z: maxZ},
	}
}

func TestAddAndQueryOverlap(t *testing.T) {

	tree := New(config.DefaultConfig())

	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	tree.Add(a, box(0, 0, 0, 1, 1, 1))
	tree.Add(b, box(0.5, 0.5, 0.5, 1.5, 1.5, 1.5))
	tree.Add(c, box(10, 10, 10, 11, 11, 11))

	hits := tree.QueryOverlap(box(0, 0, 0, 1, 1, 1))
	assert.Contains(t, hits, a)
	assert.Contains(t, hits, b)
	assert.NotContains(t, hits, c)

	leaf, ok := tree.TryGetLeaf(a)
	require.True(t, ok)
	assert.True(t, leaf.ContainsBox(ptr(box(0, 0, 0, 1, 1, 1))))
}

func ptr(b math32.Box3) *math32.Box3 { return &b }

func TestRemoveDetachesShape(t *testing.T) {

	tree := New(config.DefaultConfig())
	a := uuid.New()
	b := uuid.New()

	tree.Add(a, box(0, 0, 0, 1, 1, 1))
	tree.Add(b, box(5, 5, 5, 6, 6, 6))

	tree.Remove(a)
	_, ok := tree.TryGetLeaf(a)
	assert.False(t, ok)

	hits := tree.QueryOverlap(box(0, 0, 0, 1, 1, 1))
	assert.NotContains(t, hits, a)

	hits2 := tree.QueryOverlap(box(5, 5, 5, 6, 6, 6))
	assert.Contains(t, hits2, b)
}

func TestRemoveUnknownShapeIsNoop(t *testing.T) {

	tree := New(config.DefaultConfig())
	assert.NotPanics(t, func() { tree.Remove(uuid.New()) })
}

func TestQueueForUpdateAndOptimize(t *testing.T) {

	tree := New(config.DefaultConfig())
	a := uuid.New()
	tree.Add(a, box(0, 0, 0, 1, 1, 1))

	tree.QueueForUpdate(a, box(100, 100, 100, 101, 101, 101))
	tree.Optimize()

	leaf, ok := tree.TryGetLeaf(a)
	require.True(t, ok)
	assert.True(t, leaf.ContainsBox(ptr(box(100, 100, 100, 101, 101, 101))))

	hits := tree.QueryOverlap(box(100, 100, 100, 101, 101, 101))
	assert.Contains(t, hits, a)
}

func TestManyShapesStayQueryable(t *testing.T) {

	cfg := config.DefaultConfig()
	tree := New(cfg)

	ids := make([]uuid.UUID, 0, 50)
	for i := 0; i < 50; i++ {
		id := uuid.New()
		ids = append(ids, id)
		x := float32(i)
		tree.Add(id, box(x, 0, 0, x+0.9, 1, 1))
	}
	tree.Optimize()

	for i, id := range ids {
		x := float32(i)
		hits := tree.QueryOverlap(box(x, 0, 0, x+0.9, 1, 1))
		assert.Contains(t, hits, id)
	}

	for _, id := range ids[:25] {
		tree.Remove(id)
	}
	for _, id := range ids[:25] {
		_, ok := tree.TryGetLeaf(id)
		assert.False(t, ok)
	}
	for _, id := range ids[25:] {
		_, ok := tree.TryGetLeaf(id)
		assert.True(t, ok)
	}
}

func TestTraverseVisitsEveryLeafOnce(t *testing.T) {

	tree := New(config.DefaultConfig())
	n := 20
	for i := 0; i < n; i++ {
		x := float32(i) * 2
		tree.Add(uuid.New(), box(x, 0, 0, x+1, 1, 1))
	}

	leaves := 0
	tree.Traverse(func(_ math32.Box3, isLeaf bool) bool {
		if isLeaf {
			leaves++
		}
		return true
	})
	assert.Greater(t, leaves, 0)

	// Every leaf holds at least one shape, so the distinct leaves named in
	// leafOf are exactly the tree's leaves.
	distinct := make(map[int]bool)
	for _, idx := range tree.leafOf {
		distinct[idx] = true
	}
	assert.Equal(t, len(distinct), leaves)
}
