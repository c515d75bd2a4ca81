// Package config holds the tunable constants of the collision core.
// Defaults match the literal tolerances required for stable manifold
// selection; callers that need different tuning can load a YAML
// document with LoadConfig instead of editing these defaults in place.
package config

import (
	"io"

	"gopkg.in/yaml.v2"
)

// Config carries every tunable constant recognised by the collision core.
type Config struct {
	// ManifoldMaxPoints bounds the number of contact points a manifold
	// may hold. Points clipped beyond this count are dropped.
	ManifoldMaxPoints int `yaml:"manifold_max_points"`

	// BVHBucketCapacity is the maximum number of shapes a BVH leaf bucket
	// may hold before it splits on insertion.
	BVHBucketCapacity int `yaml:"bvh_bucket_capacity"`

	// CoplanarRoundDecimals is the rounding precision (decimal places)
	// used to coalesce mesh vertices and face normals during hull import.
	CoplanarRoundDecimals int `yaml:"coplanar_round_decimals"`

	// RelEdgeTol is the relative-tolerance hysteresis favoring face
	// contact over edge contact in SAT manifold selection.
	RelEdgeTol float32 `yaml:"rel_edge_tol"`

	// RelFaceTol is the relative-tolerance hysteresis favoring hull 1 as
	// the reference face over hull 2.
	RelFaceTol float32 `yaml:"rel_face_tol"`

	// AbsTol is the absolute tolerance term added to both hysteresis
	// comparisons above.
	AbsTol float32 `yaml:"abs_tol"`
}

// DefaultConfig returns the collision core's stock tuning constants.
func DefaultConfig() *Config {

	return &Config{
		ManifoldMaxPoints:     24,
		BVHBucketCapacity:     4,
		CoplanarRoundDecimals: 3,
		RelEdgeTol:            0.90,
		RelFaceTol:            0.95,
		AbsTol:                0.5 * 0.005,
	}
}

// LoadConfig reads a YAML document from r and overlays it onto the
// default configuration. Fields absent from the document keep their
// default value.
func LoadConfig(r io.Reader) (*Config, error) {

	cfg := DefaultConfig()
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(body, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
