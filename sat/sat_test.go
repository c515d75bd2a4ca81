package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyhull/collide/hull"
	"github.com/polyhull/collide/math32"
)

func mustBox(t *testing.T, sx, sy, sz float32) *hull.Hull {
	t.Helper()
	h, err := hull.BuildBox(sx, sy, sz)
	require.NoError(t, err)
	return h
}

func TestQueryFaceDistanceSeparated(t *testing.T) {

	h1 := mustBox(t, 2, 2, 2)
	h2 := mustBox(t, 2, 2, 2)

	t1 := math32.Identity()
	t2 := math32.NewTransform(nil, math32.NewVector3(5, 0, 0))

	res := QueryFaceDistance(&t1, h1, &t2, h2)
	// Boxes occupy [-1,1] and [4,6] along x: the +x face of h1 (x=1) is
	// separated from h2's nearest point (x=4) by a gap of 3.
	assert.InDelta(t, 3.0, res.Distance, 1e-4)
}

func TestQueryFaceDistancePenetrating(t *testing.T) {

	h1 := mustBox(t, 2, 2, 2)
	h2 := mustBox(t, 2, 2, 2)

	t1 := math32.Identity()
	t2 := math32.NewTransform(nil, math32.NewVector3(1, 0, 0))

	res := QueryFaceDistance(&t1, h1, &t2, h2)
	assert.LessOrEqual(t, res.Distance, float32(0))
}

func TestQueryEdgeDistanceSeparated(t *testing.T) {

	h1 := mustBox(t, 2, 2, 2)
	h2 := mustBox(t, 2, 2, 2)

	t1 := math32.Identity()
	t2 := math32.NewTransform(nil, math32.NewVector3(5, 0, 0))

	res := QueryEdgeDistance(&t1, h1, &t2, h2)
	// Every face normal of two axis-aligned boxes is a coordinate axis, so
	// each edge pair has a zero dot product in the arc test and no pair
	// passes arcsIntersect: no edge axis is evaluated, and the face query
	// is what reports this separation.
	assert.Equal(t, math32.Inf(-1), res.Distance)
	assert.Equal(t, -1, res.Edge1)
	assert.Equal(t, -1, res.Edge2)
}

func TestQueryEdgeDistancePenetratingBoxesOverlap(t *testing.T) {

	h1 := mustBox(t, 2, 2, 2)
	h2 := mustBox(t, 2, 2, 2)

	t1 := math32.Identity()
	t2 := math32.NewTransform(nil, math32.NewVector3(1, 0, 0))

	faceRes := QueryFaceDistance(&t1, h1, &t2, h2)
	faceRes2 := QueryFaceDistance(&t2, h2, &t1, h1)
	edgeRes := QueryEdgeDistance(&t1, h1, &t2, h2)

	assert.LessOrEqual(t, faceRes.Distance, float32(0))
	assert.LessOrEqual(t, faceRes2.Distance, float32(0))
	assert.LessOrEqual(t, edgeRes.Distance, float32(0))
}
