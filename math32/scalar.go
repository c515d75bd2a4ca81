// Package math32 implements the small set of float32 vector, quaternion,
// rigid-transform and bounding-volume operations the collision core needs.
// It started as a trim of a general-purpose 3D math library down to the
// surface the hull, SAT, manifold and BVH packages actually call.
package math32

import "math"

// Pi is exposed for callers building rotations from degrees or fractions of
// a turn (see transform_test.go).
const Pi = math.Pi

// Infinity is a signed float32 infinity, used to seed bounding boxes so the
// first ExpandByPoint/Union always wins.
var Infinity = float32(math.Inf(1))

// Inf returns a signed float32 infinity, used to seed "worst distance seen
// so far" accumulators in the SAT queries.
func Inf(sign int) float32 {
	return float32(math.Inf(sign))
}

// Sin and Cos back Quaternion.SetFromAxisAngle's half-angle construction.
func Sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

// Sqrt backs Vector3.Length/Normalize.
func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Round rounds to the nearest integer value, used to bucket mesh vertices
// and face normals to a fixed decimal precision during hull import.
func Round(v float32) float32 {
	return float32(math.Floor(float64(v) + 0.5))
}
