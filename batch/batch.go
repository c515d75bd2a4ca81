// Package batch drives pairwise collision queries over many bodies at
// once: a plain nested-loop all-pairs driver, and a BVH-narrowed driver
// that only runs the narrowphase on candidate pairs the broad-phase
// reports as overlapping. Both fan the narrowphase work out over
// goroutines writing into a pre-sized, pair-indexed buffer so the result
// ordering stays deterministic regardless of goroutine completion order.
package batch

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/polyhull/collide/bvh"
	"github.com/polyhull/collide/config"
	"github.com/polyhull/collide/hull"
	"github.com/polyhull/collide/manifold"
	"github.com/polyhull/collide/math32"
)

// Body is one rigid instance of a hull in world space.
type Body struct {
	ID        uuid.UUID
	Transform math32.Transform
	Hull      *hull.Hull
}

// PairResult is the outcome of one narrowphase query between two bodies
// addressed by their index in the input slice.
type PairResult struct {
	I, J     int
	Manifold *manifold.Manifold
}

// AllPairs runs the narrowphase on every i<j pair of bodies, in parallel,
// and returns the colliding pairs in ascending (i,j) order.
func AllPairs(bodies []Body, cfg *config.Config) []PairResult {

	n := len(bodies)
	total := n * (n - 1) / 2
	log.Debug("running %d pairs over %d bodies", total, n)
	out := make([]*manifold.Manifold, total)

	pairIndex := func(i, j int) int {
		// Triangular index for row i (0-based, i<j<n): sum of row lengths
		// before row i, plus offset within row i.
		return i*n - i*(i+1)/2 + (j - i - 1)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			i, j := i, j
			wg.Add(1)
			go func() {
				defer wg.Done()
				out[pairIndex(i, j)] = manifold.Build(&bodies[i].Transform, bodies[i].Hull, &bodies[j].Transform, bodies[j].Hull, cfg)
			}()
		}
	}
	wg.Wait()

	results := make([]PairResult, 0, total)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m := out[pairIndex(i, j)]; m != nil {
				results = append(results, PairResult{I: i, J: j, Manifold: m})
			}
		}
	}
	return results
}

// BodyPairResult is the outcome of a BVH-narrowed query, addressed by body
// identity rather than slice index since the broad-phase deals in ids.
type BodyPairResult struct {
	A, B     uuid.UUID
	Manifold *manifold.Manifold
}

func uuidLess(a, b uuid.UUID) bool { return bytes.Compare(a[:], b[:]) < 0 }

// OverlappingPairs queries tree for every body's candidate neighbours,
// dedupes and canonically orders the resulting candidate pairs, then runs
// the narrowphase on each in parallel. tree is expected to already hold
// every body's current world AABB (kept in sync by the caller via Add /
// QueueForUpdate + Optimize).
func OverlappingPairs(tree *bvh.Bvh, bodies map[uuid.UUID]Body, cfg *config.Config) []BodyPairResult {

	type idPair struct{ a, b uuid.UUID }
	seen := make(map[idPair]bool)
	var candidates []idPair

	for id, body := range bodies {
		aabb := body.Hull.WorldAABB(&body.Transform)
		for _, other := range tree.QueryOverlap(aabb) {
			if other == id {
				continue
			}
			a, b := id, other
			if uuidLess(b, a) {
				a, b = b, a
			}
			key := idPair{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, key)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].a != candidates[j].a {
			return uuidLess(candidates[i].a, candidates[j].a)
		}
		return uuidLess(candidates[i].b, candidates[j].b)
	})
	log.Debug("%d bodies, %d broad-phase candidate pairs", len(bodies), len(candidates))

	out := make([]*manifold.Manifold, len(candidates))
	var wg sync.WaitGroup
	for i, pair := range candidates {
		i, pair := i, pair
		wg.Add(1)
		go func() {
			defer wg.Done()
			bodyA, bodyB := bodies[pair.a], bodies[pair.b]
			out[i] = manifold.Build(&bodyA.Transform, bodyA.Hull, &bodyB.Transform, bodyB.Hull, cfg)
		}()
	}
	wg.Wait()

	results := make([]BodyPairResult, 0, len(candidates))
	for i, pair := range candidates {
		if out[i] != nil {
			results = append(results, BodyPairResult{A: pair.a, B: pair.b, Manifold: out[i]})
		}
	}
	return results
}
