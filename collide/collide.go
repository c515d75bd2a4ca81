// Package collide is the embedding program's entry point: it wires hull,
// sat and manifold together into four operations (is_colliding, contact,
// contains_point, closest_point). Nothing here owns state; every call is
// pure given its hull/transform arguments.
package collide

import (
	"github.com/polyhull/collide/config"
	"github.com/polyhull/collide/hull"
	"github.com/polyhull/collide/manifold"
	"github.com/polyhull/collide/math32"
	"github.com/polyhull/collide/sat"
)

// IsColliding reports whether hull1 under t1 and hull2 under t2 overlap,
// per the three-query SAT decision: both face queries and the edge query
// must all report a non-positive (penetrating) distance.
func IsColliding(t1 *math32.Transform, h1 *hull.Hull, t2 *math32.Transform, h2 *hull.Hull) bool {

	if sat.QueryFaceDistance(t1, h1, t2, h2).Distance > 0 {
		return false
	}
	if sat.QueryFaceDistance(t2, h2, t1, h1).Distance > 0 {
		return false
	}
	return sat.QueryEdgeDistance(t1, h1, t2, h2).Distance <= 0
}

// Contact runs the full SAT + clipping pipeline and returns the resulting
// contact manifold, or nil if the hulls are separated.
func Contact(t1 *math32.Transform, h1 *hull.Hull, t2 *math32.Transform, h2 *hull.Hull, cfg *config.Config) *manifold.Manifold {

	return manifold.Build(t1, h1, t2, h2, cfg)
}

// ContainsPoint reports whether the world-space point lies inside hull h
// under transform t, within tol.
func ContainsPoint(t *math32.Transform, h *hull.Hull, point *math32.Vector3, tol float32) bool {

	return h.ContainsPoint(t, point, tol)
}

// ClosestPoint returns the closest point on (or in) hull h under transform
// t to the given world-space point. If point is already inside the hull it
// is returned unchanged.
func ClosestPoint(t *math32.Transform, h *hull.Hull, point *math32.Vector3) math32.Vector3 {

	if h.ContainsPoint(t, point, 0) {
		return *point
	}

	bestFace := -1
	bestDist := math32.Inf(-1)
	var bestPlane hull.Plane
	for i := 0; i < h.FaceCount(); i++ {
		plane := h.TransformPlane(t, i)
		d := plane.Normal.Dot(point) - plane.Offset
		if d > bestDist {
			bestDist, bestFace, bestPlane = d, i, plane
		}
	}

	offset := bestPlane.Normal
	offset.MultiplyScalar(bestDist)
	proj := *point
	proj.Sub(&offset)

	return clampToFacePolygon(t, h, bestFace, proj)
}

// clampToFacePolygon pushes p back across any side plane of face it has
// strayed past, approximating the closest point within the face's polygon
// boundary. It builds each side plane the same way the manifold builder
// does for clipping a contact polygon, applied here to a single point.
func clampToFacePolygon(t *math32.Transform, h *hull.Hull, face int, p math32.Vector3) math32.Vector3 {

	refNormal := h.TransformPlane(t, face).Normal
	result := p

	h.WalkFace(face, func(e int) bool {
		he := h.Edge(e)
		next := h.Edge(he.Next)
		a := h.WorldVertex(t, he.Origin)
		b := h.WorldVertex(t, next.Origin)

		dir := math32.NewVec3().SubVectors(&b, &a)
		sideNormal := math32.NewVec3().CrossVectors(dir, &refNormal)
		sideNormal.Normalize()
		sideOffset := sideNormal.Dot(&a)

		d := sideNormal.Dot(&result) - sideOffset
		if d > 0 {
			push := *sideNormal
			push.MultiplyScalar(d)
			result.Sub(&push)
		}
		return true
	})
	return result
}
