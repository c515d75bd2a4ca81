package batch

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyhull/collide/bvh"
	"github.com/polyhull/collide/config"
	"github.com/polyhull/collide/hull"
	"github.com/polyhull/collide/math32"
)

func mustBox(t *testing.T, sx, sy, sz float32) *hull.Hull {
	t.Helper()
	h, err := hull.BuildBox(sx, sy, sz)
	require.NoError(t, err)
	return h
}

func TestAllPairsFindsOnlyCollidingPairs(t *testing.T) {

	cfg := config.DefaultConfig()
	h := mustBox(t, 2, 2, 2)

	bodies := []Body{
		{ID: uuid.New(), Transform: math32.Identity(), Hull: h},
		{ID: uuid.New(), Transform: math32.NewTransform(nil, math32.NewVector3(1, 0, 0)), Hull: h},
		{ID: uuid.New(), Transform: math32.NewTransform(nil, math32.NewVector3(20, 0, 0)), Hull: h},
	}

	results := AllPairs(bodies, cfg)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].I)
	assert.Equal(t, 1, results[0].J)
	assert.NotNil(t, results[0].Manifold)
}

func TestAllPairsEmptyWhenAllSeparated(t *testing.T) {

	cfg := config.DefaultConfig()
	h := mustBox(t, 2, 2, 2)

	bodies := []Body{
		{ID: uuid.New(), Transform: math32.Identity(), Hull: h},
		{ID: uuid.New(), Transform: math32.NewTransform(nil, math32.NewVector3(20, 0, 0)), Hull: h},
	}

	results := AllPairs(bodies, cfg)
	assert.Empty(t, results)
}

func TestOverlappingPairsUsesBVHCandidates(t *testing.T) {

	cfg := config.DefaultConfig()
	h := mustBox(t, 2, 2, 2)
	tree := bvh.New(cfg)
	bodies := make(map[uuid.UUID]Body)

	add := func(offset float32) uuid.UUID {
		id := uuid.New()
		tr := math32.NewTransform(nil, math32.NewVector3(offset, 0, 0))
		b := Body{ID: id, Transform: tr, Hull: h}
		bodies[id] = b
		tree.Add(id, h.WorldAABB(&tr))
		return id
	}

	a := add(0)
	bID := add(1)
	_ = add(50)

	results := OverlappingPairs(tree, bodies, cfg)
	require.Len(t, results, 1)
	pair := results[0]
	assert.True(t, pair.A == a || pair.A == bID)
	assert.True(t, pair.B == a || pair.B == bID)
	assert.NotNil(t, pair.Manifold)
}

func TestOverlappingPairsEmptyWhenTreeIsSparse(t *testing.T) {

	cfg := config.DefaultConfig()
	h := mustBox(t, 2, 2, 2)
	tree := bvh.New(cfg)
	bodies := make(map[uuid.UUID]Body)

	for _, offset := range []float32{0, 50, 100} {
		id := uuid.New()
		tr := math32.NewTransform(nil, math32.NewVector3(offset, 0, 0))
		bodies[id] = Body{ID: id, Transform: tr, Hull: h}
		tree.Add(id, h.WorldAABB(&tr))
	}

	results := OverlappingPairs(tree, bodies, cfg)
	assert.Empty(t, results)
}
