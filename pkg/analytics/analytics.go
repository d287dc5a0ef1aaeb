// Package analytics derives scalar openness metrics from a ray fan. The same
// RayHit list that shapes the visibility polygon also tells how much of the
// viewer's sight is open sky, built mass, or greenery.
package analytics

import "github.com/Nodal-Works/isovist/pkg/isovist"

// VisibilityStats summarizes one visibility computation.
type VisibilityStats struct {
	TotalRays      int `json:"total_rays"`
	OpenRays       int `json:"open_rays"`
	VegetationRays int `json:"vegetation_rays"`
	// BuildingRaysByCategory counts building-terminated rays per obstacle
	// category tag.
	BuildingRaysByCategory map[string]int `json:"building_rays_by_category"`

	// OpenPercent is the share of rays reaching max distance, in [0,100].
	OpenPercent float64 `json:"open_percent"`
	// GreenViewFactor is the fraction of rays terminating on vegetation,
	// in [0,1]. A proxy for perceived greenery.
	GreenViewFactor float64 `json:"green_view_factor"`

	// Distinct obstacle counts: one obstacle hit by many rays counts once.
	// Used to highlight which obstacles are visible, not how visible the
	// scene is.
	DistinctBuildings  int `json:"distinct_buildings"`
	DistinctVegetation int `json:"distinct_vegetation"`
}

// Aggregate computes statistics over a ray fan. A zero-ray fan yields zero
// ratios rather than dividing by zero.
func Aggregate(hits []isovist.RayHit) VisibilityStats {
	stats := VisibilityStats{
		TotalRays:              len(hits),
		BuildingRaysByCategory: make(map[string]int),
	}

	buildings := make(map[string]struct{})
	vegetation := make(map[string]struct{})

	for _, h := range hits {
		switch h.Kind {
		case isovist.HitOpen:
			stats.OpenRays++
		case isovist.HitBuilding:
			stats.BuildingRaysByCategory[h.Category]++
			buildings[h.ObstacleID] = struct{}{}
		case isovist.HitVegetation:
			stats.VegetationRays++
			vegetation[h.ObstacleID] = struct{}{}
		}
	}

	stats.DistinctBuildings = len(buildings)
	stats.DistinctVegetation = len(vegetation)

	if stats.TotalRays > 0 {
		stats.OpenPercent = float64(stats.OpenRays) / float64(stats.TotalRays) * 100
		stats.GreenViewFactor = float64(stats.VegetationRays) / float64(stats.TotalRays)
	}
	return stats
}

// BuildingRays returns the total ray count across all building categories.
func (s VisibilityStats) BuildingRays() int {
	total := 0
	for _, n := range s.BuildingRaysByCategory {
		total += n
	}
	return total
}
