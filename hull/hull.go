// Package hull implements the immutable half-edge convex polyhedron used
// throughout the collision core. A Hull owns four parallel index-addressable
// arrays (vertices, faces, planes, half-edges) and never mutates them after
// Build; this gives cheap, allocation-free concurrent reads from the SAT and
// clipping pipelines.
package hull

import (
	"github.com/google/uuid"

	"github.com/polyhull/collide/math32"
)

// Face is a polygon of the hull, identified by one half-edge on its boundary.
type Face struct {
	FirstEdge int
}

// Plane is the supporting plane of a face: the set of points p with
// dot(Normal, p) == Offset. Normal points outward from the hull.
type Plane struct {
	Normal math32.Vector3
	Offset float32
}

// HalfEdge is one directed edge of the half-edge graph. Twin is always the
// edge's partner in the opposite direction; by construction twin pairs are
// stored at adjacent indices, so Twin(e) == e^1.
type HalfEdge struct {
	Prev, Next, Twin, Face, Origin int
}

// Hull is an immutable convex polyhedron in local space.
type Hull struct {
	id uuid.UUID

	vertices []math32.Vector3
	faces    []Face
	planes   []Plane
	edges    []HalfEdge

	localAABB      math32.Box3
	boundingSphere math32.Sphere
	localCentroid  math32.Vector3
}

// LocalCentroid returns the mean of the hull's vertices in local space,
// used by the edge-axis SAT test to orient a candidate separating axis
// outward from the hull.
func (h *Hull) LocalCentroid() math32.Vector3 { return h.localCentroid }

// ID returns the hull's stable identity, assigned once at build time.
func (h *Hull) ID() uuid.UUID { return h.id }

// VertexCount returns the number of vertices, V.
func (h *Hull) VertexCount() int { return len(h.vertices) }

// FaceCount returns the number of faces, F.
func (h *Hull) FaceCount() int { return len(h.faces) }

// EdgeCount returns the number of half-edges, E (always even).
func (h *Hull) EdgeCount() int { return len(h.edges) }

// Vertex returns the i-th local-space vertex.
func (h *Hull) Vertex(i int) math32.Vector3 { return h.vertices[i] }

// FaceAt returns the i-th face record.
func (h *Hull) FaceAt(i int) Face { return h.faces[i] }

// Plane returns the supporting plane of the i-th face.
func (h *Hull) Plane(i int) Plane { return h.planes[i] }

// Edge returns the i-th half-edge record.
func (h *Hull) Edge(i int) HalfEdge { return h.edges[i] }

// Twin returns the index of e's twin half-edge.
func (h *Hull) Twin(e int) int { return h.edges[e].Twin }

// LocalAABB returns the hull's axis-aligned bounding box in local space,
// computed once at build time.
func (h *Hull) LocalAABB() math32.Box3 { return h.localAABB }

// BoundingSphere returns the hull's local-space bounding sphere.
func (h *Hull) BoundingSphere() math32.Sphere { return h.boundingSphere }

// Support returns the index of the vertex that is extreme (furthest) in the
// given local-space direction: argmax_i dot(direction, vertex[i]).
// O(V) linear scan; hill-climbing via edge adjacency is not required.
func (h *Hull) Support(direction *math32.Vector3) int {

	best := 0
	bestDot := h.vertices[0].Dot(direction)
	for i := 1; i < len(h.vertices); i++ {
		d := h.vertices[i].Dot(direction)
		if d > bestDot {
			bestDot = d
			best = i
		}
	}
	return best
}

// SupportPoint returns the support vertex's position directly.
func (h *Hull) SupportPoint(direction *math32.Vector3) math32.Vector3 {

	return h.vertices[h.Support(direction)]
}

// FaceCentroid returns the mean of the origins of the half-edges walking
// face f, an O(deg(f)) operation.
func (h *Hull) FaceCentroid(f int) math32.Vector3 {

	var sum math32.Vector3
	n := 0
	start := h.faces[f].FirstEdge
	e := start
	for {
		sum.Add(&h.vertices[h.edges[e].Origin])
		n++
		e = h.edges[e].Next
		if e == start {
			break
		}
	}
	sum.MultiplyScalar(1.0 / float32(n))
	return sum
}

// FaceVertexCount returns the number of vertices walking face f's boundary.
func (h *Hull) FaceVertexCount(f int) int {

	n := 0
	start := h.faces[f].FirstEdge
	e := start
	for {
		n++
		e = h.edges[e].Next
		if e == start {
			break
		}
	}
	return n
}

// WalkFace calls fn once for each half-edge around face f's boundary, in
// order. fn returning false stops the walk early.
func (h *Hull) WalkFace(f int, fn func(edge int) bool) {

	start := h.faces[f].FirstEdge
	e := start
	for {
		if !fn(e) {
			return
		}
		e = h.edges[e].Next
		if e == start {
			return
		}
	}
}

// TransformPlane transforms the i-th face plane from local to world space
// given transform t: normal' = rotate(t.Rot, normal); offset' = offset +
// dot(normal', t.Pos).
func (h *Hull) TransformPlane(t *math32.Transform, i int) Plane {

	p := h.planes[i]
	normal, offset := t.TransformPlane(&p.Normal, p.Offset)
	return Plane{Normal: normal, Offset: offset}
}

// WorldVertex returns the i-th vertex transformed by t into world space.
func (h *Hull) WorldVertex(t *math32.Transform, i int) math32.Vector3 {

	return t.Apply(&h.vertices[i])
}

// WorldAABB returns the hull's world-space AABB under transform t.
func (h *Hull) WorldAABB(t *math32.Transform) math32.Box3 {
	return h.localAABB.TransformedBounds(t)
}

// ContainsPoint reports whether the world-space point p lies inside (or on)
// every face half-space of the hull under transform t.
func (h *Hull) ContainsPoint(t *math32.Transform, p *math32.Vector3, tol float32) bool {

	for i := range h.planes {
		plane := h.TransformPlane(t, i)
		if plane.Normal.Dot(p)-plane.Offset > tol {
			return false
		}
	}
	return true
}
