package isovist

import (
	"math"

	"github.com/Nodal-Works/isovist/pkg/geo"
	"github.com/Nodal-Works/isovist/pkg/obstacle"
)

// HitKind classifies what terminated a ray.
type HitKind string

const (
	// HitOpen means the ray reached max distance unobstructed.
	HitOpen HitKind = "open"
	// HitBuilding means the nearest obstruction was a polygon obstacle.
	HitBuilding HitKind = "building"
	// HitVegetation means the nearest obstruction was a circular obstacle.
	HitVegetation HitKind = "vegetation"
)

// RayHit is the result of casting a single ray.
type RayHit struct {
	// Angle is the ray bearing in radians (clockwise from +Y).
	Angle float64 `json:"angle"`
	// Distance is the distance to the obstruction, or max distance for open rays.
	Distance float64 `json:"distance"`
	Kind     HitKind `json:"kind"`
	// ObstacleID identifies the struck obstacle; empty for open rays. It is a
	// stable handle into the obstacle set, valid across restructuring, unlike
	// a positional index.
	ObstacleID string `json:"obstacle_id,omitempty"`
	// Category carries the polygon obstacle's category tag, or the circle's
	// label, for statistics grouping.
	Category string `json:"category,omitempty"`
}

// Caster casts ray fans against an obstacle index.
type Caster struct {
	index  *obstacle.Index
	params Params
}

// NewCaster builds a caster. Params are validated here so no invalid
// configuration ever reaches a cast.
func NewCaster(index *obstacle.Index, params Params) (*Caster, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Caster{index: index, params: params}, nil
}

// Params returns the caster's configuration.
func (c *Caster) Params() Params {
	return c.params
}

// Cast computes one RayHit per sampled angle for a viewer at the given
// position. lookBearing (degrees) orients the cone and is ignored when
// omnidirectional. Hits are returned in sweep order.
func (c *Caster) Cast(viewer geo.Point2D, lookBearing float64) []RayHit {
	polys, circles := c.index.CandidatesNear(viewer, c.params.MaxDistance)

	hits := make([]RayHit, 0, c.params.RayCount)
	for i := 0; i < c.params.RayCount; i++ {
		bearing := c.rayBearing(lookBearing, i)
		hits = append(hits, c.castOne(viewer, bearing, polys, circles))
	}
	return hits
}

// rayBearing returns the bearing in degrees of the i-th ray.
//
// Omnidirectional fans tile [0,360) in equal open-ended steps so the first and
// last rays never coincide. Cone fans span the closed interval
// [look-fov/2, look+fov/2]: both boundary rays are sampled, which makes the
// assembled pie slice meet its straight edges exactly.
func (c *Caster) rayBearing(lookBearing float64, i int) float64 {
	if c.params.Omnidirectional {
		return 360 * float64(i) / float64(c.params.RayCount)
	}
	if c.params.RayCount == 1 {
		return geo.NormalizeBearing(lookBearing)
	}
	start := lookBearing - c.params.FOVDegrees/2
	step := c.params.FOVDegrees / float64(c.params.RayCount-1)
	return geo.NormalizeBearing(start + step*float64(i))
}

// castOne finds the nearest obstruction along one ray. Polygons are scanned
// before circles and nearer hits replace prior ones only on strictly smaller
// distance, so an exact distance tie between a building edge and a canopy
// resolves to the building.
func (c *Caster) castOne(viewer geo.Point2D, bearingDeg float64, polys []*obstacle.Polygon, circles []*obstacle.Circle) RayHit {
	hit := RayHit{
		Angle:    bearingDeg * math.Pi / 180,
		Distance: c.params.MaxDistance,
		Kind:     HitOpen,
	}

	end := geo.Destination(viewer, c.params.MaxDistance, bearingDeg)
	if viewer.Distance(end) < 1e-12 {
		// Degenerate zero-length ray; nothing forward of the origin.
		hit.Distance = 0
		return hit
	}

	for _, poly := range polys {
		n := poly.Ring.Len()
		for e := 0; e < n; e++ {
			a, b := poly.Ring.Edge(e)
			pt, ok := geo.SegmentIntersection(viewer, end, a, b)
			if !ok {
				continue
			}
			if d := viewer.Distance(pt); d < hit.Distance {
				hit.Distance = d
				hit.Kind = HitBuilding
				hit.ObstacleID = poly.ID
				hit.Category = poly.Category
			}
		}
	}

	if c.params.IncludeVegetation {
		for _, circle := range circles {
			pt, ok := geo.RayCircleIntersection(viewer, end, circle.Center, circle.Radius)
			if !ok {
				continue
			}
			if d := viewer.Distance(pt); d < hit.Distance {
				hit.Distance = d
				hit.Kind = HitVegetation
				hit.ObstacleID = circle.ID
				hit.Category = circle.Label
			}
		}
	}

	return hit
}
