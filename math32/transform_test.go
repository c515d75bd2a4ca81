package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityTransform(t *testing.T) {

	tr := Identity()
	p := NewVector3(1, 2, 3)
	out := tr.Apply(p)
	assert.Equal(t, *p, out)
}

func TestTransformApplyAndInverse(t *testing.T) {

	var q Quaternion
	q.SetFromAxisAngle(NewVector3(0, 0, 1), Pi/2)
	pos := NewVector3(5, 0, 0)
	tr := NewTransform(&q, pos)

	p := NewVector3(1, 0, 0)
	world := tr.Apply(p)

	// Rotating (1,0,0) by 90 degrees about Z gives (0,1,0), then translate by (5,0,0).
	assert.InDelta(t, 5.0, world.X, 1e-5)
	assert.InDelta(t, 1.0, world.Y, 1e-5)
	assert.InDelta(t, 0.0, world.Z, 1e-5)

	inv := tr.Inverse()
	back := inv.Apply(&world)
	assert.InDelta(t, p.X, back.X, 1e-4)
	assert.InDelta(t, p.Y, back.Y, 1e-4)
	assert.InDelta(t, p.Z, back.Z, 1e-4)
}

func TestTransformPlane(t *testing.T) {

	var q Quaternion
	q.SetIdentity()
	pos := NewVector3(0, 0, 5)
	tr := NewTransform(&q, pos)

	normal := NewVector3(0, 0, 1)
	worldNormal, worldOffset := tr.TransformPlane(normal, 1)

	assert.InDelta(t, 0.0, worldNormal.X, 1e-6)
	assert.InDelta(t, 0.0, worldNormal.Y, 1e-6)
	assert.InDelta(t, 1.0, worldNormal.Z, 1e-6)
	// Local plane z == 1, translated by +5 along z -> world plane z == 6.
	assert.InDelta(t, 6.0, worldOffset, 1e-5)
}
