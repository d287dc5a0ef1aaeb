package obstacle

import "github.com/Nodal-Works/isovist/pkg/geo"

const (
	// searchRingStep is the radial spacing between concentric search rings.
	searchRingStep = 5.0
	// searchRingSamples is the number of angular samples per ring.
	searchRingSamples = 16
)

// InsideAny returns true if the point lies inside any polygon obstacle.
// Circles are canopy, not solid, so they never block placement.
func (ix *Index) InsideAny(p geo.Point2D) bool {
	for i := range ix.set.Polygons {
		poly := &ix.set.Polygons[i]
		if p.X < poly.Box.Min.X || p.X > poly.Box.Max.X ||
			p.Y < poly.Box.Min.Y || p.Y > poly.Box.Max.Y {
			continue
		}
		if poly.Ring.Contains(p) {
			return true
		}
	}
	return false
}

// NearestOpenPosition finds a viewer position near p that is not inside any
// polygon obstacle. If p is already open it is returned unchanged. Otherwise
// concentric rings of increasing radius are sampled until an open point is
// found or maxSearchRadius is exhausted; in the latter case p is returned
// with ok=false and the caller should treat placement as degraded.
func (ix *Index) NearestOpenPosition(p geo.Point2D, maxSearchRadius float64) (geo.Point2D, bool) {
	if !ix.InsideAny(p) {
		return p, true
	}
	for radius := searchRingStep; radius <= maxSearchRadius; radius += searchRingStep {
		for i := 0; i < searchRingSamples; i++ {
			bearing := float64(i) * 360 / searchRingSamples
			candidate := geo.Destination(p, radius, bearing)
			if !ix.InsideAny(candidate) {
				return candidate, true
			}
		}
	}
	return p, false
}
