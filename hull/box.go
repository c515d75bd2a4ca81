package hull

import (
	"github.com/google/uuid"

	"github.com/polyhull/collide/math32"
)

// BuildBox constructs a validated hull for an axis-aligned box with the
// given extents (full width along each axis, not half-extents). Vertices
// sit at (±sx/2, ±sy/2, ±sz/2); the six quad faces carry outward normals
// ±x, ±y, ±z. Winding is counter-clockwise viewed from outside each face,
// matching the builder's mesh-import convention.
func BuildBox(sx, sy, sz float32) (*Hull, error) {

	if sx <= 0 || sy <= 0 || sz <= 0 {
		return nil, &BuildError{Kind: InsufficientVertices, Index: -1}
	}

	hx, hy, hz := sx/2, sy/2, sz/2

	// Corner indices: 0-3 go around the -z square, 4-7 around the +z
	// square in the same order.
	v := func(xs, ys, zs float32) math32.Vector3 { return math32.Vector3{X: xs, Y: ys, Z: zs} }
	verts := []math32.Vector3{
		v(-hx, -hy, -hz), // 0
		v(+hx, -hy, -hz), // 1
		v(+hx, +hy, -hz), // 2
		v(-hx, +hy, -hz), // 3
		v(-hx, -hy, +hz), // 4
		v(+hx, -hy, +hz), // 5
		v(+hx, +hy, +hz), // 6
		v(-hx, +hy, +hz), // 7
	}

	// Each face's vertex loop, counter-clockwise viewed from outside.
	faceLoops := [6][4]int{
		{0, 3, 2, 1}, // -z
		{4, 5, 6, 7}, // +z
		{0, 1, 5, 4}, // -y
		{3, 7, 6, 2}, // +y
		{0, 4, 7, 3}, // -x
		{1, 2, 6, 5}, // +x
	}

	b := newBuilder(verts)
	for _, loop := range faceLoops {
		b.addFace(loop[:])
	}
	if err := b.linkTwins(); err != nil {
		return nil, err
	}

	h := &Hull{
		id:       uuid.New(),
		vertices: b.vertices,
		faces:    b.faces,
		edges:    b.edges,
	}
	h.planes = computePlanesNewell(h)
	h.localAABB = *computeLocalAABB(h.vertices)
	h.boundingSphere = h.localAABB.GetBoundingSphere()
	h.localCentroid = computeCentroid(h.vertices)

	if err := Validate(h); err != nil {
		return nil, err
	}
	return h, nil
}

func computeCentroid(verts []math32.Vector3) math32.Vector3 {

	var sum math32.Vector3
	for _, v := range verts {
		sum.Add(&v)
	}
	sum.MultiplyScalar(1.0 / float32(len(verts)))
	return sum
}

func computeLocalAABB(verts []math32.Vector3) *math32.Box3 {

	box := math32.NewBox3(nil, nil)
	box.SetFromPoints(verts)
	return box
}
