package hull

// Validate asserts every half-edge invariant from the data model against h,
// returning the first violation found. Callers are expected to validate
// every hull once at build time (BuildBox/BuildFromMesh already do this);
// a hull that fails validation must not be handed to a query.
func Validate(h *Hull) error {

	e := len(h.edges)
	if e%2 != 0 {
		return &BuildError{Kind: NonManifoldEdge, Index: -1}
	}
	// FeaturePair.Key packs edge indices into int16; a hull this dense is
	// outside any realistic use of this core anyway.
	if e > 1<<15-1 {
		return &BuildError{Kind: UnclosedMesh, Index: -1}
	}

	for i := range h.edges {
		ed := h.edges[i]

		// twin(twin(e)) == e and |twin(e) - e| == 1
		if h.edges[ed.Twin].Twin != i {
			return &BuildError{Kind: NonManifoldEdge, Index: i}
		}
		diff := ed.Twin - i
		if diff != 1 && diff != -1 {
			return &BuildError{Kind: NonManifoldEdge, Index: i}
		}

		// next(prev(e)) == e == prev(next(e))
		if h.edges[ed.Prev].Next != i || h.edges[ed.Next].Prev != i {
			return &BuildError{Kind: NonManifoldEdge, Index: i}
		}

		// origin(e) != origin(twin(e))
		if ed.Origin == h.edges[ed.Twin].Origin {
			return &BuildError{Kind: NonManifoldEdge, Index: i}
		}

		// face in range, or -1 for an open boundary
		if ed.Face < -1 || ed.Face >= len(h.faces) {
			return &BuildError{Kind: UnclosedMesh, Index: i}
		}
	}

	// Walking next around a face returns to start; all edges visited
	// share the same face.
	for f := range h.faces {
		start := h.faces[f].FirstEdge
		cur := start
		count := 0
		for {
			if h.edges[cur].Face != f {
				return &BuildError{Kind: DegenerateInput, Index: f}
			}
			cur = h.edges[cur].Next
			count++
			if count > len(h.edges) {
				return &BuildError{Kind: DegenerateInput, Index: f}
			}
			if cur == start {
				break
			}
		}
		if count < 3 {
			return &BuildError{Kind: DegenerateInput, Index: f}
		}
	}

	// Every vertex is the origin of at least one half-edge.
	seen := make([]bool, len(h.vertices))
	for i := range h.edges {
		seen[h.edges[i].Origin] = true
	}
	for v, ok := range seen {
		if !ok {
			return &BuildError{Kind: InsufficientVertices, Index: v}
		}
	}

	return nil
}
