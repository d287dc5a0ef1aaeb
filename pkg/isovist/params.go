// Package isovist computes visibility polygons: given a viewer position and a
// set of obstacles, it casts a fan of rays and assembles the region of the
// plane visible from that viewpoint. The approach is angular ray sampling, not
// exact polygon clipping: cost is bounded and predictable at the price of
// angular resolution, which suits interactive per-frame recomputation.
package isovist

import "fmt"

// Default parameter values.
const (
	DefaultMaxDistance = 200.0
	DefaultRayCount    = 360
	DefaultFOVDegrees  = 120.0
	DefaultBandCount   = 5
)

// Params configures a visibility computation. Invalid values are rejected by
// Validate before any ray is cast; nothing is clamped silently.
type Params struct {
	// MaxDistance is the view radius in scene length units.
	MaxDistance float64 `json:"max_distance" yaml:"max_distance"`
	// RayCount is the number of rays in the fan.
	RayCount int `json:"ray_count" yaml:"ray_count"`
	// FOVDegrees is the total cone angle when not omnidirectional.
	FOVDegrees float64 `json:"fov_degrees" yaml:"fov_degrees"`
	// Omnidirectional casts the full 360 degrees, ignoring FOVDegrees and
	// the look bearing.
	Omnidirectional bool `json:"omnidirectional" yaml:"omnidirectional"`
	// IncludeVegetation controls whether circular obstacles block rays.
	IncludeVegetation bool `json:"include_vegetation" yaml:"include_vegetation"`
}

// DefaultParams returns the documented defaults: 200-unit radius, 360 rays,
// 120-degree cone, vegetation included.
func DefaultParams() Params {
	return Params{
		MaxDistance:       DefaultMaxDistance,
		RayCount:          DefaultRayCount,
		FOVDegrees:        DefaultFOVDegrees,
		Omnidirectional:   false,
		IncludeVegetation: true,
	}
}

// Validate checks the parameters, returning a descriptive error for the first
// violation found.
func (p Params) Validate() error {
	if p.RayCount <= 0 {
		return fmt.Errorf("ray count must be positive, got %d", p.RayCount)
	}
	if p.MaxDistance <= 0 {
		return fmt.Errorf("max view distance must be positive, got %g", p.MaxDistance)
	}
	if !p.Omnidirectional {
		if p.FOVDegrees <= 0 || p.FOVDegrees > 360 {
			return fmt.Errorf("field of view must be in (0, 360], got %g", p.FOVDegrees)
		}
	}
	return nil
}
