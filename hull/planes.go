package hull

import "github.com/polyhull/collide/math32"

// computePlanesNewell computes each face's supporting plane via Newell's
// method, which is robust to small numerical noise in non-planar input
// (unlike a single cross product of two edges) and works for arbitrary
// polygon vertex counts, not just triangles.
func computePlanesNewell(h *Hull) []Plane {

	planes := make([]Plane, len(h.faces))
	for f := range h.faces {
		var normal math32.Vector3
		var sum math32.Vector3
		n := 0

		h.WalkFace(f, func(e int) bool {
			cur := h.vertices[h.edges[e].Origin]
			nxt := h.vertices[h.edges[h.edges[e].Next].Origin]

			normal.X += (cur.Y - nxt.Y) * (cur.Z + nxt.Z)
			normal.Y += (cur.Z - nxt.Z) * (cur.X + nxt.X)
			normal.Z += (cur.X - nxt.X) * (cur.Y + nxt.Y)

			sum.Add(&cur)
			n++
			return true
		})

		normal.Normalize()
		sum.MultiplyScalar(1.0 / float32(n))
		offset := normal.Dot(&sum)
		planes[f] = Plane{Normal: normal, Offset: offset}
	}
	return planes
}
