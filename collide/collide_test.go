package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyhull/collide/config"
	"github.com/polyhull/collide/hull"
	"github.com/polyhull/collide/math32"
)

func mustBox(t *testing.T, sx, sy, sz float32) *hull.Hull {
	t.Helper()
	h, err := hull.BuildBox(sx, sy, sz)
	require.NoError(t, err)
	return h
}

func TestIsCollidingOverlapping(t *testing.T) {

	h1 := mustBox(t, 2, 2, 2)
	h2 := mustBox(t, 2, 2, 2)

	t1 := math32.Identity()
	t2 := math32.NewTransform(nil, math32.NewVector3(1, 0, 0))

	assert.True(t, IsColliding(&t1, h1, &t2, h2))
}

func TestIsCollidingSeparated(t *testing.T) {

	h1 := mustBox(t, 2, 2, 2)
	h2 := mustBox(t, 2, 2, 2)

	t1 := math32.Identity()
	t2 := math32.NewTransform(nil, math32.NewVector3(10, 0, 0))

	assert.False(t, IsColliding(&t1, h1, &t2, h2))
}

func TestContactMatchesIsColliding(t *testing.T) {

	h1 := mustBox(t, 2, 2, 2)
	h2 := mustBox(t, 2, 2, 2)
	cfg := config.DefaultConfig()

	t1 := math32.Identity()
	t2 := math32.NewTransform(nil, math32.NewVector3(1.5, 0, 0))

	assert.True(t, IsColliding(&t1, h1, &t2, h2))
	m := Contact(&t1, h1, &t2, h2, cfg)
	require.NotNil(t, m)
	assert.NotEmpty(t, m.Points)

	t2Far := math32.NewTransform(nil, math32.NewVector3(10, 0, 0))
	assert.False(t, IsColliding(&t1, h1, &t2Far, h2))
	assert.Nil(t, Contact(&t1, h1, &t2Far, h2, cfg))
}

func TestContainsPointAndClosestPoint(t *testing.T) {

	h := mustBox(t, 2, 2, 2)
	identity := math32.Identity()

	inside := math32.NewVector3(0, 0, 0)
	assert.True(t, ContainsPoint(&identity, h, inside, 1e-4))

	outside := math32.NewVector3(5, 0, 0)
	assert.False(t, ContainsPoint(&identity, h, outside, 1e-4))

	closest := ClosestPoint(&identity, h, outside)
	assert.InDelta(t, 1.0, closest.X, 1e-4)
	assert.InDelta(t, 0.0, closest.Y, 1e-4)
	assert.InDelta(t, 0.0, closest.Z, 1e-4)

	// A point already inside the hull is returned unchanged.
	same := ClosestPoint(&identity, h, inside)
	assert.Equal(t, *inside, same)
}
