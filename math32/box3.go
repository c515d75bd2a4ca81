package math32

// Box3 is an axis-aligned bounding box defined by its minimum and maximum
// corners. It is the BVH's sole payload and the hull package's local and
// world bounding volume.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// Sphere is a bounding sphere derived from a Box3. Nothing in the collision
// core currently queries against it directly; it is cached on Hull and
// exposed for callers that want a cheaper (if looser) overlap pre-test than
// the AABB.
type Sphere struct {
	Center Vector3
	Radius float32
}

// NewBox3 creates a Box3 from the given min/max corners. Either may be nil,
// in which case the box is set to its empty (all-infinity) state.
func NewBox3(min, max *Vector3) *Box3 {

	b := new(Box3)
	b.Set(min, max)
	return b
}

// Set sets this box's min/max corners, or its empty state if either
// argument is nil. Returns the pointer to this updated box.
func (b *Box3) Set(min, max *Vector3) *Box3 {

	if min != nil {
		b.Min = *min
	} else {
		b.Min.Set(Infinity, Infinity, Infinity)
	}
	if max != nil {
		b.Max = *max
	} else {
		b.Max.Set(-Infinity, -Infinity, -Infinity)
	}
	return b
}

// MakeEmpty resets this box to its empty state, ready for a sequence of
// ExpandByPoint calls. Returns the pointer to this updated box.
func (b *Box3) MakeEmpty() *Box3 {

	b.Min.Set(Infinity, Infinity, Infinity)
	b.Max.Set(-Infinity, -Infinity, -Infinity)
	return b
}

// SetFromPoints sets this box to the bounds of points. Returns the pointer
// to this updated box.
func (b *Box3) SetFromPoints(points []Vector3) *Box3 {

	b.MakeEmpty()
	for i := range points {
		b.ExpandByPoint(&points[i])
	}
	return b
}

// ExpandByPoint grows this box, if needed, to include point. Returns the
// pointer to this updated box.
func (b *Box3) ExpandByPoint(point *Vector3) *Box3 {

	b.Min.Min(point)
	b.Max.Max(point)
	return b
}

// ContainsBox reports whether box lies entirely within this box.
func (b *Box3) ContainsBox(box *Box3) bool {

	return b.Min.X <= box.Min.X && box.Max.X <= b.Max.X &&
		b.Min.Y <= box.Min.Y && box.Max.Y <= b.Max.Y &&
		b.Min.Z <= box.Min.Z && box.Max.Z <= b.Max.Z
}

// IsIntersectionBox reports whether other overlaps this box, including
// touching at a boundary.
func (b *Box3) IsIntersectionBox(other *Box3) bool {

	return !(other.Max.X < b.Min.X || other.Min.X > b.Max.X ||
		other.Max.Y < b.Min.Y || other.Min.Y > b.Max.Y ||
		other.Max.Z < b.Min.Z || other.Min.Z > b.Max.Z)
}

// Size returns the vector from this box's minimum corner to its maximum
// corner. optionalTarget, if non-nil, receives the result in place of a
// fresh allocation.
func (b *Box3) Size(optionalTarget *Vector3) *Vector3 {

	result := optionalTarget
	if result == nil {
		result = new(Vector3)
	}
	return result.SubVectors(&b.Max, &b.Min)
}

// center returns the midpoint of this box. Used internally by
// GetBoundingSphere; nothing outside this package needs a box's center on
// its own.
func (b *Box3) center() Vector3 {

	var c Vector3
	c.AddVectors(&b.Min, &b.Max)
	c.MultiplyScalar(0.5)
	return c
}

// Union grows this box, if needed, to also cover other. Returns the
// pointer to this updated box.
func (b *Box3) Union(other *Box3) *Box3 {

	b.Min.Min(&other.Min)
	b.Max.Max(&other.Max)
	return b
}

// GetBoundingSphere returns the sphere centered on this box with a radius
// reaching its farthest corner.
func (b *Box3) GetBoundingSphere() Sphere {

	return Sphere{
		Center: b.center(),
		Radius: b.Size(nil).Length() * 0.5,
	}
}

// TransformedBounds returns the AABB of this box's eight corners after
// applying t: the world-space AABB of a hull's local box under a rigid
// transform, cheaper than re-scanning every hull vertex on every BVH
// refit.
func (b *Box3) TransformedBounds(t *Transform) Box3 {

	corners := [8]Vector3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	world := t.Apply(&corners[0])
	out := Box3{Min: world, Max: world}
	for i := 1; i < len(corners); i++ {
		world = t.Apply(&corners[i])
		out.ExpandByPoint(&world)
	}
	return out
}
