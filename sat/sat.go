// Package sat implements the Separating-Axis-Theorem queries used to
// decide whether two convex hulls overlap and, if they do not, which
// feature pair witnesses the separation. Face and edge axes are queried
// separately (rather than folded into one best-axis scan) so the manifold
// builder can tell a face contact from an edge contact and apply the right
// clipping strategy to each.
package sat

import (
	"github.com/polyhull/collide/hull"
	"github.com/polyhull/collide/math32"
)

// FaceResult is the outcome of a face-distance query against one hull.
type FaceResult struct {
	FaceIndex int
	Distance  float32
}

// QueryFaceDistance finds the face of hull1 that best separates hull1 from
// hull2: for each face, the support vertex of hull2 opposite the face
// normal is found and its signed distance to the face plane evaluated. The
// face with the greatest (least negative, or first positive) signed
// distance is returned. A positive Distance means that face alone
// separates the hulls.
func QueryFaceDistance(t1 *math32.Transform, h1 *hull.Hull, t2 *math32.Transform, h2 *hull.Hull) FaceResult {

	best := FaceResult{FaceIndex: -1, Distance: math32.Inf(-1)}
	t2inv := t2.Inverse()

	for i := 0; i < h1.FaceCount(); i++ {
		plane := h1.TransformPlane(t1, i)

		negNormal := plane.Normal
		negNormal.Negate()
		localDir := t2inv.ApplyVector(&negNormal)

		supportLocal := h2.SupportPoint(&localDir)
		supportWorld := t2.Apply(&supportLocal)

		dist := plane.Normal.Dot(&supportWorld) - plane.Offset
		if dist > best.Distance {
			best = FaceResult{FaceIndex: i, Distance: dist}
		}
	}
	return best
}

// EdgeResult is the outcome of an edge-distance query between two hulls.
type EdgeResult struct {
	Edge1, Edge2 int
	Distance     float32
}

const parallelTol = 1e-6

// QueryEdgeDistance iterates every undirected edge pair (one representative
// half-edge per undirected edge, i.e. steps of 2) between hull1 and hull2,
// builds the candidate separating axis as the cross product of the world
// edge directions, discards pairs whose Gauss-map arcs don't cross (the
// standard a,b/c,d arc test) or whose axis is degenerate, and tracks the
// maximum signed separation found.
func QueryEdgeDistance(t1 *math32.Transform, h1 *hull.Hull, t2 *math32.Transform, h2 *hull.Hull) EdgeResult {

	best := EdgeResult{Edge1: -1, Edge2: -1, Distance: math32.Inf(-1)}
	center1 := t1.Apply(ptr(h1.LocalCentroid()))

	for e1 := 0; e1 < h1.EdgeCount(); e1 += 2 {
		he1 := h1.Edge(e1)
		p1 := h1.WorldVertex(t1, he1.Origin)
		q1 := h1.WorldVertex(t1, h1.Edge(he1.Twin).Origin)
		dir1 := math32.NewVec3().SubVectors(&q1, &p1)

		aNormal := h1.TransformPlane(t1, he1.Face).Normal
		bNormal := h1.TransformPlane(t1, h1.Edge(he1.Twin).Face).Normal

		for e2 := 0; e2 < h2.EdgeCount(); e2 += 2 {
			he2 := h2.Edge(e2)
			p2 := h2.WorldVertex(t2, he2.Origin)
			q2 := h2.WorldVertex(t2, h2.Edge(he2.Twin).Origin)
			dir2 := math32.NewVec3().SubVectors(&q2, &p2)

			cNormal := h2.TransformPlane(t2, he2.Face).Normal
			dNormal := h2.TransformPlane(t2, h2.Edge(he2.Twin).Face).Normal

			if !arcsIntersect(&aNormal, &bNormal, &cNormal, &dNormal) {
				continue
			}

			axis := math32.NewVec3().CrossVectors(dir1, dir2)
			if axis.Length() < parallelTol {
				continue
			}
			axis.Normalize()

			// Orient outward from hull1's centroid.
			toP1 := math32.NewVec3().SubVectors(&p1, &center1)
			if axis.Dot(toP1) < 0 {
				axis.Negate()
			}

			diff := math32.NewVec3().SubVectors(&p2, &p1)
			dist := axis.Dot(diff)

			if dist > best.Distance {
				best = EdgeResult{Edge1: e1, Edge2: e2, Distance: dist}
			}
		}
	}
	return best
}

// arcsIntersect implements the Gauss-map arc-crossing test: the edges'
// candidate axis is only a valid separating axis witness if the spherical
// arcs (bounded by each edge's two adjacent face normals) cross.
// a,b are the face normals bounding edge 1; c,d bound edge 2.
func arcsIntersect(a, b, c, d *math32.Vector3) bool {

	cba := c.Dot(a)
	cbb := c.Dot(b)
	dba := d.Dot(a)
	dbb := d.Dot(b)

	return dba*dbb < 0 && cbb*cba < 0
}

func ptr(v math32.Vector3) *math32.Vector3 { return &v }
