package hull

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyhull/collide/math32"
)

func boxVertices(hx, hy, hz float32) []math32.Vector3 {

	return []math32.Vector3{
		{X: -hx, Y: -hy, Z: -hz}, // 0
		{X: hx, Y: -hy, Z: -hz},  // 1
		{X: hx, Y: hy, Z: -hz},   // 2
		{X: -hx, Y: hy, Z: -hz},  // 3
		{X: -hx, Y: -hy, Z: hz},  // 4
		{X: hx, Y: -hy, Z: hz},   // 5
		{X: hx, Y: hy, Z: hz},    // 6
		{X: -hx, Y: hy, Z: hz},   // 7
	}
}

// boxTriangles splits the same six quad faces BuildBox uses into two
// triangles each, preserving outward winding.
func boxTriangles() []int {

	quads := [6][4]int{
		{0, 3, 2, 1}, // -z
		{4, 5, 6, 7}, // +z
		{0, 1, 5, 4}, // -y
		{3, 7, 6, 2}, // +y
		{0, 4, 7, 3}, // -x
		{1, 2, 6, 5}, // +x
	}
	var tris []int
	for _, q := range quads {
		tris = append(tris, q[0], q[1], q[2])
		tris = append(tris, q[0], q[2], q[3])
	}
	return tris
}

func TestBuildFromMeshMergesCoplanarTriangles(t *testing.T) {

	h, err := BuildFromMesh(boxVertices(1, 1, 1), boxTriangles())
	require.NoError(t, err)

	assert.Equal(t, 8, h.VertexCount())
	assert.Equal(t, 6, h.FaceCount())
	assert.Equal(t, 24, h.EdgeCount())
	require.NoError(t, Validate(h))
}

func TestBuildFromMeshRejectsTooFewVertices(t *testing.T) {

	_, err := BuildFromMesh([]math32.Vector3{{}, {}, {}}, []int{0, 1, 2})
	require.Error(t, err)
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, InsufficientVertices, buildErr.Kind)
}

func TestBuildFromMeshRejectsNonManifoldEdge(t *testing.T) {

	// The same triangle listed twice: every directed edge of the
	// coplanar, vertex-sharing group is then traversed twice.
	verts := []math32.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, // unused, keeps the input above the 4-vertex floor
	}
	tris := []int{0, 1, 2, 0, 1, 2}

	_, err := BuildFromMesh(verts, tris)
	require.Error(t, err)
	var buildErr *BuildError
	if !require.ErrorAs(t, err, &buildErr) {
		t.Log(spew.Sdump(err))
	}
	assert.Equal(t, NonManifoldEdge, buildErr.Kind)
}

func TestBuildFromMeshRejectsDegenerateTriangle(t *testing.T) {

	verts := []math32.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0}, // coincides with vertex 1 after rounding
		{X: 0, Y: 0, Z: 1},
	}
	tris := []int{0, 1, 2, 0, 1, 3, 1, 2, 3, 0, 2, 3}

	_, err := BuildFromMesh(verts, tris)
	require.Error(t, err)
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, DegenerateInput, buildErr.Kind)
}
