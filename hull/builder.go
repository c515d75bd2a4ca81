package hull

import "github.com/polyhull/collide/math32"

// builder accumulates half-edges face-by-face from a sequence of ordered
// vertex loops, the common machinery shared by BuildBox and BuildFromMesh.
type builder struct {
	vertices []math32.Vector3
	faces    []Face
	edges    []HalfEdge
	edgeMap  map[[2]int]int
}

func newBuilder(vertices []math32.Vector3) *builder {

	return &builder{
		vertices: vertices,
		edgeMap:  make(map[[2]int]int),
	}
}

// addFace appends one face whose boundary is the given ordered, CCW (viewed
// from outside) vertex index loop. Shared edges with previously added faces
// are detected via edgeMap and their placeholder twin half-edge is patched
// in rather than re-allocated.
func (b *builder) addFace(loop []int) error {

	n := len(loop)
	faceIdx := len(b.faces)
	if n < 3 {
		return &BuildError{Kind: DegenerateInput, Index: faceIdx}
	}

	loopEdges := make([]int, n)
	for i := 0; i < n; i++ {
		v1 := loop[i]
		v2 := loop[(i+1)%n]
		key := [2]int{v1, v2}

		if existing, ok := b.edgeMap[key]; ok {
			if b.edges[existing].Face != -1 {
				return &BuildError{Kind: NonManifoldEdge, Index: existing}
			}
			b.edges[existing].Face = faceIdx
			loopEdges[i] = existing
			continue
		}

		e12 := len(b.edges)
		e21 := e12 + 1
		b.edges = append(b.edges,
			HalfEdge{Origin: v1, Face: faceIdx, Twin: e21},
			HalfEdge{Origin: v2, Face: -1, Twin: e12},
		)
		b.edgeMap[key] = e12
		b.edgeMap[[2]int{v2, v1}] = e21
		loopEdges[i] = e12
	}

	for i := 0; i < n; i++ {
		cur := loopEdges[i]
		next := loopEdges[(i+1)%n]
		b.edges[cur].Next = next
		b.edges[next].Prev = cur
	}

	b.faces = append(b.faces, Face{FirstEdge: loopEdges[0]})
	return nil
}

// linkTwins performs the final closure check: every half-edge must have
// received a non-negative Face by the time all faces have been added,
// otherwise the mesh has an open boundary.
func (b *builder) linkTwins() error {

	for i := range b.edges {
		if b.edges[i].Face == -1 {
			return &BuildError{Kind: UnclosedMesh, Index: i}
		}
	}
	return nil
}
