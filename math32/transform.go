package math32

// Transform is a rigid transform: a rotation followed by a translation.
// Collision queries pass it by pointer rather than threading rotation and
// position as separate arguments.
type Transform struct {
	Rot Quaternion
	Pos Vector3
}

// Identity returns the identity transform (no rotation, zero translation).
func Identity() Transform {

	var t Transform
	t.Rot.SetIdentity()
	return t
}

// NewTransform creates a transform from a rotation and a position.
func NewTransform(rot *Quaternion, pos *Vector3) Transform {

	var t Transform
	if rot != nil {
		t.Rot = *rot
	} else {
		t.Rot.SetIdentity()
	}
	if pos != nil {
		t.Pos = *pos
	}
	return t
}

// Apply transforms a local-space point into world space: rotate then translate.
func (t *Transform) Apply(p *Vector3) Vector3 {

	out := *p
	out.ApplyQuaternion(&t.Rot)
	out.Add(&t.Pos)
	return out
}

// ApplyVector rotates a direction vector (no translation applied).
func (t *Transform) ApplyVector(v *Vector3) Vector3 {

	out := *v
	out.ApplyQuaternion(&t.Rot)
	return out
}

// Inverse returns the transform that undoes t.
func (t *Transform) Inverse() Transform {

	var inv Transform
	inv.Rot = *t.Rot.Clone().Conjugate()
	p := t.Pos
	p.ApplyQuaternion(&inv.Rot)
	inv.Pos = *p.Clone().Negate()
	return inv
}

// TransformPlane transforms a plane given in local space (as a unit normal
// and signed offset, n.p = offset) by t into world space.
func (t *Transform) TransformPlane(normal *Vector3, offset float32) (Vector3, float32) {

	worldNormal := t.ApplyVector(normal)
	worldOffset := offset + worldNormal.Dot(&t.Pos)
	return worldNormal, worldOffset
}
