package hull

import (
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/polyhull/collide/math32"
)

// roundDecimals is the precision used both to coalesce vertices and to
// bucket face normals. It is a fixed constant equal to the default
// config.CoplanarRoundDecimals (3); the builder does not read a Config.
const roundDecimals = 3

type roundKey [3]int64

func roundScale() float32 {

	s := float32(1)
	for i := 0; i < roundDecimals; i++ {
		s *= 10
	}
	return s
}

func roundVector(v math32.Vector3) roundKey {

	scale := roundScale()
	return roundKey{
		int64(math32.Round(v.X * scale)),
		int64(math32.Round(v.Y * scale)),
		int64(math32.Round(v.Z * scale)),
	}
}

func keyToVector(k roundKey) math32.Vector3 {

	scale := roundScale()
	return math32.Vector3{X: float32(k[0]) / scale, Y: float32(k[1]) / scale, Z: float32(k[2]) / scale}
}

// BuildFromMesh constructs a validated hull from an indexed triangle mesh.
// vertices holds the raw vertex positions; triangles holds flat
// (v0,v1,v2) triples indexing into vertices. Vertices are coalesced,
// triangles grouped by rounded face normal, each group's boundary
// extracted as a face, orphan vertices dropped, half-edges emitted, and
// planes computed via Newell's method.
func BuildFromMesh(vertices []math32.Vector3, triangles []int) (*Hull, error) {

	if len(vertices) < 4 {
		return nil, &BuildError{Kind: InsufficientVertices, Index: -1}
	}
	if len(triangles)%3 != 0 {
		return nil, &BuildError{Kind: DegenerateInput, Index: -1}
	}
	numTris := len(triangles) / 3

	// Step 1: coalesce vertices by rounding to a fixed precision.
	coalesced := make([]math32.Vector3, 0, len(vertices))
	keyToIndex := make(map[roundKey]int, len(vertices))
	origToCoalesced := make([]int, len(vertices))
	for i, v := range vertices {
		k := roundVector(v)
		idx, ok := keyToIndex[k]
		if !ok {
			idx = len(coalesced)
			coalesced = append(coalesced, keyToVector(k))
			keyToIndex[k] = idx
		}
		origToCoalesced[i] = idx
	}

	// Step 2: per-triangle rounded normal, bucketed.
	triVerts := make([][3]int, numTris)
	triNormalKey := make([]roundKey, numTris)
	buckets := make(map[roundKey][]int)
	for t := 0; t < numTris; t++ {
		i0, i1, i2 := triangles[3*t], triangles[3*t+1], triangles[3*t+2]
		p1 := coalesced[origToCoalesced[i0]]
		p2 := coalesced[origToCoalesced[i1]]
		p3 := coalesced[origToCoalesced[i2]]
		triVerts[t] = [3]int{origToCoalesced[i0], origToCoalesced[i1], origToCoalesced[i2]}

		e1 := math32.NewVec3().SubVectors(&p3, &p2)
		e2 := math32.NewVec3().SubVectors(&p1, &p2)
		n := math32.NewVec3().CrossVectors(e1, e2)
		if n.Length() == 0 {
			return nil, &BuildError{Kind: DegenerateInput, Index: t}
		}
		n.Normalize()
		k := roundVector(*n)
		triNormalKey[t] = k
		buckets[k] = append(buckets[k], t)
	}

	// Step 3: within each normal bucket, union-find triangles sharing a
	// vertex into coplanar groups.
	uf := newUnionFind(numTris)
	for _, tris := range buckets {
		vertexOwner := make(map[int]int, len(tris)*3)
		for _, t := range tris {
			for _, v := range triVerts[t] {
				if owner, ok := vertexOwner[v]; ok {
					uf.union(owner, t)
				} else {
					vertexOwner[v] = t
				}
			}
		}
	}

	groups := make(map[int][]int)
	for t := 0; t < numTris; t++ {
		root := uf.find(t)
		groups[root] = append(groups[root], t)
	}

	// Deterministic group processing order.
	roots := maps.Keys(groups)
	slices.Sort(roots)

	// Steps 4: extract each group's perimeter.
	var loops [][]int
	for faceIdx, root := range roots {
		tris := groups[root]
		loop, err := extractPerimeter(triVerts, tris, faceIdx)
		if err != nil {
			return nil, err
		}
		loops = append(loops, loop)
	}

	// Step 5: drop orphan coalesced vertices not referenced by any face
	// loop, and reindex the loops against the compacted vertex array.
	used := make([]bool, len(coalesced))
	for _, loop := range loops {
		for _, v := range loop {
			used[v] = true
		}
	}
	remap := make([]int, len(coalesced))
	finalVerts := make([]math32.Vector3, 0, len(coalesced))
	for i, ok := range used {
		if ok {
			remap[i] = len(finalVerts)
			finalVerts = append(finalVerts, coalesced[i])
		} else {
			remap[i] = -1
		}
	}
	for _, loop := range loops {
		for i, v := range loop {
			loop[i] = remap[v]
		}
	}

	// Steps 6-7: emit half-edges and link prev/next per face.
	b := newBuilder(finalVerts)
	for _, loop := range loops {
		if err := b.addFace(loop); err != nil {
			return nil, err
		}
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
	// Step 8: face planes via Newell's method.
	h.planes = computePlanesNewell(h)
	h.localAABB = *computeLocalAABB(h.vertices)
	h.boundingSphere = h.localAABB.GetBoundingSphere()
	h.localCentroid = computeCentroid(h.vertices)

	if err := Validate(h); err != nil {
		return nil, err
	}
	return h, nil
}

// extractPerimeter collects the directed edges of a coplanar triangle
// group, drops every edge that appears with both orientations (interior,
// shared between two triangles of the group), and walks the surviving
// directed edges into a single closed loop.
func extractPerimeter(triVerts [][3]int, tris []int, faceIdx int) ([]int, error) {

	edgeCount := make(map[[2]int]int)
	for _, t := range tris {
		vs := triVerts[t]
		for i := 0; i < 3; i++ {
			a, b := vs[i], vs[(i+1)%3]
			edgeCount[[2]int{a, b}]++
		}
	}

	startToEnd := make(map[int]int)
	for e, count := range edgeCount {
		if count > 1 {
			return nil, &BuildError{Kind: NonManifoldEdge, Index: faceIdx}
		}
		rev := [2]int{e[1], e[0]}
		if edgeCount[rev] > 0 {
			continue // interior edge, shared with both orientations
		}
		if _, dup := startToEnd[e[0]]; dup {
			// A vertex shared by two disjoint perimeter loops of the
			// same face is not a simple polygon boundary.
			return nil, &BuildError{Kind: NonManifoldEdge, Index: faceIdx}
		}
		startToEnd[e[0]] = e[1]
	}

	if len(startToEnd) < 3 {
		return nil, &BuildError{Kind: DegenerateInput, Index: faceIdx}
	}

	// Walk the boundary starting from an arbitrary surviving edge.
	var start int
	for k := range startToEnd {
		start = k
		break
	}
	loop := []int{start}
	cur := start
	for {
		next, ok := startToEnd[cur]
		if !ok {
			return nil, &BuildError{Kind: DegenerateInput, Index: faceIdx}
		}
		if next == start {
			break
		}
		loop = append(loop, next)
		cur = next
		if len(loop) > len(startToEnd) {
			return nil, &BuildError{Kind: DegenerateInput, Index: faceIdx}
		}
	}

	if len(loop) != len(startToEnd) {
		return nil, &BuildError{Kind: DegenerateInput, Index: faceIdx}
	}
	return loop, nil
}
