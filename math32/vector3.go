package math32

// Vector3 is a 3D point or direction with X, Y and Z components. It is the
// common currency of the collision core: hull vertices, face normals, SAT
// axes and manifold contact points are all Vector3 values.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// NewVector3 creates a Vector3 with the given components.
func NewVector3(x, y, z float32) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

// NewVec3 creates a zeroed Vector3.
func NewVec3() *Vector3 {
	return &Vector3{}
}

// Set sets this vector's components. Returns the pointer to this updated
// vector.
func (v *Vector3) Set(x, y, z float32) *Vector3 {

	v.X = x
	v.Y = y
	v.Z = z
	return v
}

// Add adds other to this vector. Returns the pointer to this updated
// vector.
func (v *Vector3) Add(other *Vector3) *Vector3 {

	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	return v
}

// AddVectors sets this vector to a + b. Returns the pointer to this updated
// vector.
func (v *Vector3) AddVectors(a, b *Vector3) *Vector3 {

	v.X = a.X + b.X
	v.Y = a.Y + b.Y
	v.Z = a.Z + b.Z
	return v
}

// Sub subtracts other from this vector. Returns the pointer to this updated
// vector.
func (v *Vector3) Sub(other *Vector3) *Vector3 {

	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
	return v
}

// SubVectors sets this vector to a - b. Returns the pointer to this updated
// vector.
func (v *Vector3) SubVectors(a, b *Vector3) *Vector3 {

	v.X = a.X - b.X
	v.Y = a.Y - b.Y
	v.Z = a.Z - b.Z
	return v
}

// MultiplyScalar multiplies each component by s. Returns the pointer to
// this updated vector.
func (v *Vector3) MultiplyScalar(s float32) *Vector3 {

	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

// DivideScalar divides each component by scalar. If scalar is zero, zeroes
// the vector instead of dividing by it. Returns the pointer to this updated
// vector.
func (v *Vector3) DivideScalar(scalar float32) *Vector3 {

	if scalar == 0 {
		v.X, v.Y, v.Z = 0, 0, 0
		return v
	}
	inv := 1 / scalar
	v.X *= inv
	v.Y *= inv
	v.Z *= inv
	return v
}

// Min sets each component to the lesser of itself and other's. Used by
// Box3.ExpandByPoint to grow a box's minimum corner.
func (v *Vector3) Min(other *Vector3) *Vector3 {

	if other.X < v.X {
		v.X = other.X
	}
	if other.Y < v.Y {
		v.Y = other.Y
	}
	if other.Z < v.Z {
		v.Z = other.Z
	}
	return v
}

// Max sets each component to the greater of itself and other's. Used by
// Box3.ExpandByPoint to grow a box's maximum corner.
func (v *Vector3) Max(other *Vector3) *Vector3 {

	if other.X > v.X {
		v.X = other.X
	}
	if other.Y > v.Y {
		v.Y = other.Y
	}
	if other.Z > v.Z {
		v.Z = other.Z
	}
	return v
}

// Negate negates each component. Returns the pointer to this updated
// vector.
func (v *Vector3) Negate() *Vector3 {

	v.X = -v.X
	v.Y = -v.Y
	v.Z = -v.Z
	return v
}

// Dot returns the dot product of this vector with other.
func (v *Vector3) Dot(other *Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Length returns the Euclidean length of this vector.
func (v *Vector3) Length() float32 {
	return Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize scales this vector to unit length. Returns the pointer to this
// updated vector.
func (v *Vector3) Normalize() *Vector3 {
	return v.DivideScalar(v.Length())
}

// CrossVectors sets this vector to the cross product of a and b. Returns
// the pointer to this updated vector.
func (v *Vector3) CrossVectors(a, b *Vector3) *Vector3 {

	cx := a.Y*b.Z - a.Z*b.Y
	cy := a.Z*b.X - a.X*b.Z
	cz := a.X*b.Y - a.Y*b.X
	v.X = cx
	v.Y = cy
	v.Z = cz
	return v
}

// ApplyQuaternion rotates this vector by q. Returns the pointer to this
// updated vector.
func (v *Vector3) ApplyQuaternion(q *Quaternion) *Vector3 {

	x, y, z := v.X, v.Y, v.Z
	qx, qy, qz, qw := q.X, q.Y, q.Z, q.W

	// i = q * v (v as a pure quaternion), then result = i * conj(q)
	ix := qw*x + qy*z - qz*y
	iy := qw*y + qz*x - qx*z
	iz := qw*z + qx*y - qy*x
	iw := -qx*x - qy*y - qz*z

	v.X = ix*qw + iw*-qx + iy*-qz - iz*-qy
	v.Y = iy*qw + iw*-qy + iz*-qx - ix*-qz
	v.Z = iz*qw + iw*-qz + ix*-qy - iy*-qx
	return v
}

// Clone returns a copy of this vector.
func (v *Vector3) Clone() *Vector3 {
	return NewVector3(v.X, v.Y, v.Z)
}
