// Package bvh implements the dynamic AABB tree used as the collision
// core's broad-phase: a single-writer, arena-indexed binary tree of
// world-space bounding boxes supporting incremental add/remove, deferred
// refit, and a rotation-based rebalancing pass. It follows the hull
// package's arena-of-structs convention (index-addressable slices, no
// pointers) since this tree must mutate in place as shapes move.
package bvh

import (
	"github.com/google/uuid"

	"github.com/polyhull/collide/config"
	"github.com/polyhull/collide/math32"
)

const nilNode = -1

type entry struct {
	id   uuid.UUID
	aabb math32.Box3
}

type node struct {
	aabb        math32.Box3
	parent      int
	left, right int // nilNode for a leaf
	shapes      []entry
}

func (n *node) isLeaf() bool { return n.left == nilNode && n.right == nilNode }

// Bvh is a dynamic bounding volume hierarchy over caller-identified shapes.
// The zero value is not usable; construct with New.
type Bvh struct {
	nodes []node
	free  []int
	root  int

	leafOf  map[uuid.UUID]int
	pending map[uuid.UUID]math32.Box3

	bucketCapacity int
}

// New creates an empty tree. cfg supplies the leaf bucket capacity.
func New(cfg *config.Config) *Bvh {

	return &Bvh{
		root:           nilNode,
		leafOf:         make(map[uuid.UUID]int),
		pending:        make(map[uuid.UUID]math32.Box3),
		bucketCapacity: cfg.BVHBucketCapacity,
	}
}

func surfaceArea(b math32.Box3) float32 {

	d := b.Size(nil)
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

func union(a, b math32.Box3) math32.Box3 {

	out := a
	out.Union(&b)
	return out
}

func (t *Bvh) alloc() int {

	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[idx] = node{left: nilNode, right: nilNode, parent: nilNode}
		return idx
	}
	t.nodes = append(t.nodes, node{left: nilNode, right: nilNode, parent: nilNode})
	return len(t.nodes) - 1
}

func (t *Bvh) freeNode(idx int) {

	t.free = append(t.free, idx)
}

// Add inserts a shape identified by id with the given world-space AABB.
func (t *Bvh) Add(id uuid.UUID, aabb math32.Box3) {

	if t.root == nilNode {
		leaf := t.alloc()
		t.nodes[leaf] = node{aabb: aabb, parent: nilNode, left: nilNode, right: nilNode,
			shapes: []entry{{id: id, aabb: aabb}}}
		t.root = leaf
		t.leafOf[id] = leaf
		return
	}

	cur := t.root
	for !t.nodes[cur].isLeaf() {
		l, r := t.nodes[cur].left, t.nodes[cur].right
		costL := surfaceArea(union(t.nodes[l].aabb, aabb))
		costR := surfaceArea(union(t.nodes[r].aabb, aabb))
		switch {
		case costL < costR:
			cur = l
		case costR < costL:
			cur = r
		default:
			if t.depth(l) <= t.depth(r) {
				cur = l
			} else {
				cur = r
			}
		}
	}

	leaf := &t.nodes[cur]
	if len(leaf.shapes) < t.bucketCapacity {
		leaf.shapes = append(leaf.shapes, entry{id: id, aabb: aabb})
		leaf.aabb.Union(&aabb)
		t.leafOf[id] = cur
		t.refitUpward(t.nodes[cur].parent)
		return
	}

	log.Debug("leaf %d full, splitting", cur)
	t.splitLeaf(cur, entry{id: id, aabb: aabb})
}

// splitLeaf replaces leaf node idx (currently full) with an internal node
// whose two new leaf children share idx's existing entries plus extra,
// redistributed by the same union-surface-area rule used for descent.
func (t *Bvh) splitLeaf(idx int, extra entry) {

	all := append(append([]entry{}, t.nodes[idx].shapes...), extra)

	leftChild := t.alloc()
	rightChild := t.alloc()
	t.nodes[leftChild] = node{aabb: all[0].aabb, parent: idx, left: nilNode, right: nilNode,
		shapes: []entry{all[0]}}
	t.nodes[rightChild] = node{aabb: all[1].aabb, parent: idx, left: nilNode, right: nilNode,
		shapes: []entry{all[1]}}

	for _, e := range all[2:] {
		costL := surfaceArea(union(t.nodes[leftChild].aabb, e.aabb))
		costR := surfaceArea(union(t.nodes[rightChild].aabb, e.aabb))
		if costL <= costR {
			t.nodes[leftChild].shapes = append(t.nodes[leftChild].shapes, e)
			t.nodes[leftChild].aabb.Union(&e.aabb)
		} else {
			t.nodes[rightChild].shapes = append(t.nodes[rightChild].shapes, e)
			t.nodes[rightChild].aabb.Union(&e.aabb)
		}
	}

	parent := t.nodes[idx].parent
	t.nodes[idx] = node{
		aabb:   union(t.nodes[leftChild].aabb, t.nodes[rightChild].aabb),
		parent: parent,
		left:   leftChild,
		right:  rightChild,
	}

	for _, e := range t.nodes[leftChild].shapes {
		t.leafOf[e.id] = leftChild
	}
	for _, e := range t.nodes[rightChild].shapes {
		t.leafOf[e.id] = rightChild
	}

	t.refitUpward(parent)
}

func (t *Bvh) depth(idx int) int {

	if idx == nilNode {
		return 0
	}
	n := &t.nodes[idx]
	if n.isLeaf() {
		return 1
	}
	dl, dr := t.depth(n.left), t.depth(n.right)
	if dl > dr {
		return dl + 1
	}
	return dr + 1
}

// refitUpward recomputes node idx's AABB from its children (if internal) and
// walks toward the root, stopping as soon as an ancestor's AABB doesn't
// change.
func (t *Bvh) refitUpward(idx int) {

	for idx != nilNode {
		n := &t.nodes[idx]
		if n.isLeaf() {
			idx = n.parent
			continue
		}
		newBox := union(t.nodes[n.left].aabb, t.nodes[n.right].aabb)
		if newBox == n.aabb {
			return
		}
		n.aabb = newBox
		idx = n.parent
	}
}

func (t *Bvh) otherChild(parent, child int) int {

	if t.nodes[parent].left == child {
		return t.nodes[parent].right
	}
	return t.nodes[parent].left
}

// Remove detaches the shape identified by id. Removing an id not present in
// the tree is a silent no-op.
func (t *Bvh) Remove(id uuid.UUID) {

	idx, ok := t.leafOf[id]
	if !ok {
		return
	}
	leaf := &t.nodes[idx]
	for i, e := range leaf.shapes {
		if e.id == id {
			leaf.shapes = append(leaf.shapes[:i], leaf.shapes[i+1:]...)
			break
		}
	}
	delete(t.leafOf, id)

	if len(leaf.shapes) > 0 {
		box := math32.NewBox3(nil, nil).MakeEmpty()
		for _, e := range leaf.shapes {
			box.Union(&e.aabb)
		}
		leaf.aabb = *box
		t.refitUpward(leaf.parent)
		return
	}

	// The leaf is now empty: remove it from the tree, collapsing its
	// parent away and promoting its sibling.
	parent := leaf.parent
	t.freeNode(idx)

	if parent == nilNode {
		t.root = nilNode
		return
	}
	sibling := t.otherChild(parent, idx)
	grandparent := t.nodes[parent].parent
	t.freeNode(parent)

	t.nodes[sibling].parent = grandparent
	if grandparent == nilNode {
		t.root = sibling
		return
	}
	if t.nodes[grandparent].left == parent {
		t.nodes[grandparent].left = sibling
	} else {
		t.nodes[grandparent].right = sibling
	}
	t.refitUpward(grandparent)
}

// QueueForUpdate records that id's AABB may have changed; it takes effect
// on the next Optimize call. Queuing the same id again before Optimize
// overwrites the pending AABB (still a single pending refit per shape).
func (t *Bvh) QueueForUpdate(id uuid.UUID, newAABB math32.Box3) {

	t.pending[id] = newAABB
}

// Optimize drains the refit queue (reinserting shapes whose AABB no longer
// fits their leaf) and then runs one pass of node-rotation rebalancing.
func (t *Bvh) Optimize() {

	for id, newAABB := range t.pending {
		idx, ok := t.leafOf[id]
		if !ok {
			continue
		}
		if t.nodes[idx].aabb.ContainsBox(&newAABB) {
			for i := range t.nodes[idx].shapes {
				if t.nodes[idx].shapes[i].id == id {
					t.nodes[idx].shapes[i].aabb = newAABB
					break
				}
			}
			continue
		}
		t.Remove(id)
		t.Add(id, newAABB)
	}
	t.pending = make(map[uuid.UUID]math32.Box3)

	t.rotatePass()
}

// rotatePass visits every internal node once (snapshotting the node set
// first, since rotations reparent nodes but never allocate or free any)
// and commits the best improving rotation among the five candidates.
func (t *Bvh) rotatePass() {

	internal := make([]int, 0, len(t.nodes))
	for i := range t.nodes {
		if !t.nodeFreed(i) && !t.nodes[i].isLeaf() {
			internal = append(internal, i)
		}
	}
	for _, idx := range internal {
		t.tryRotation(idx)
	}
}

func (t *Bvh) nodeFreed(idx int) bool {

	for _, f := range t.free {
		if f == idx {
			return true
		}
	}
	return false
}

// tryRotation considers the five candidate grandchild/child swaps around
// internal node idx and commits whichever most reduces the combined
// surface area of the two affected parents, if any does.
func (t *Bvh) tryRotation(idx int) {

	l, r := t.nodes[idx].left, t.nodes[idx].right
	type pair struct{ a, b int }
	var candidates []pair

	if !t.nodes[r].isLeaf() {
		candidates = append(candidates, pair{l, t.nodes[r].left}, pair{l, t.nodes[r].right})
	}
	if !t.nodes[l].isLeaf() {
		candidates = append(candidates, pair{r, t.nodes[l].left}, pair{r, t.nodes[l].right})
	}
	if !t.nodes[l].isLeaf() && !t.nodes[r].isLeaf() {
		candidates = append(candidates, pair{t.nodes[l].left, t.nodes[r].left})
	}

	bestGain := float32(0)
	bestIdx := -1
	for i, c := range candidates {
		gain := t.currentCost(c.a, c.b) - t.swapCost(c.a, c.b)
		if gain > bestGain {
			bestGain = gain
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		log.Debug("rotating nodes %d/%d around %d, gain %f", candidates[bestIdx].a, candidates[bestIdx].b, idx, bestGain)
		t.commitSwap(candidates[bestIdx].a, candidates[bestIdx].b)
	}
}

func (t *Bvh) currentCost(a, b int) float32 {

	pa, pb := t.nodes[a].parent, t.nodes[b].parent
	return surfaceArea(t.nodes[pa].aabb) + surfaceArea(t.nodes[pb].aabb)
}

func (t *Bvh) swapCost(a, b int) float32 {

	pa, pb := t.nodes[a].parent, t.nodes[b].parent
	siblingA := t.otherChild(pa, a)
	siblingB := t.otherChild(pb, b)
	newPb := union(t.nodes[siblingB].aabb, t.nodes[a].aabb)
	newPa := union(t.nodes[siblingA].aabb, t.nodes[b].aabb)
	if siblingA == pb {
		// Child/grandchild swap: pb is a's sibling, so after the swap pa's
		// children are b and the rebuilt pb.
		newPa = union(newPb, t.nodes[b].aabb)
	}
	return surfaceArea(newPa) + surfaceArea(newPb)
}

func (t *Bvh) commitSwap(a, b int) {

	pa, pb := t.nodes[a].parent, t.nodes[b].parent

	if t.nodes[pa].left == a {
		t.nodes[pa].left = b
	} else {
		t.nodes[pa].right = b
	}
	if t.nodes[pb].left == b {
		t.nodes[pb].left = a
	} else {
		t.nodes[pb].right = a
	}
	t.nodes[a].parent = pb
	t.nodes[b].parent = pa

	t.nodes[pa].aabb = union(t.nodes[t.nodes[pa].left].aabb, t.nodes[t.nodes[pa].right].aabb)
	t.nodes[pb].aabb = union(t.nodes[t.nodes[pb].left].aabb, t.nodes[t.nodes[pb].right].aabb)

	t.refitUpward(t.nodes[pa].parent)
	t.refitUpward(t.nodes[pb].parent)
}

// Traverse visits the tree depth-first starting at the root. cb is called
// once per node with its AABB and whether it is a leaf; returning false
// skips descending into that node's children.
func (t *Bvh) Traverse(cb func(box math32.Box3, isLeaf bool) bool) {

	if t.root == nilNode {
		return
	}
	t.traverseNode(t.root, cb)
}

func (t *Bvh) traverseNode(idx int, cb func(box math32.Box3, isLeaf bool) bool) {

	n := &t.nodes[idx]
	if !cb(n.aabb, n.isLeaf()) {
		return
	}
	if n.isLeaf() {
		return
	}
	t.traverseNode(n.left, cb)
	t.traverseNode(n.right, cb)
}

// QueryOverlap returns the ids of every shape whose AABB intersects aabb.
func (t *Bvh) QueryOverlap(aabb math32.Box3) []uuid.UUID {

	var out []uuid.UUID
	if t.root == nilNode {
		return out
	}
	var visit func(idx int)
	visit = func(idx int) {
		n := &t.nodes[idx]
		if !n.aabb.IsIntersectionBox(&aabb) {
			return
		}
		if n.isLeaf() {
			for _, e := range n.shapes {
				if e.aabb.IsIntersectionBox(&aabb) {
					out = append(out, e.id)
				}
			}
			return
		}
		visit(n.left)
		visit(n.right)
	}
	visit(t.root)
	return out
}

// TryGetLeaf returns the current leaf AABB holding shape id, and whether it
// was found.
func (t *Bvh) TryGetLeaf(id uuid.UUID) (math32.Box3, bool) {

	idx, ok := t.leafOf[id]
	if !ok {
		return math32.Box3{}, false
	}
	return t.nodes[idx].aabb, true
}
