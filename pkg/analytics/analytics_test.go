package analytics

import (
	"math"
	"testing"

	"github.com/Nodal-Works/isovist/pkg/geo"
	"github.com/Nodal-Works/isovist/pkg/isovist"
	"github.com/Nodal-Works/isovist/pkg/obstacle"
)

const tolerance = 0.001

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func castScene(t *testing.T, set *obstacle.Set, params isovist.Params, viewer geo.Point2D, look float64) []isovist.RayHit {
	t.Helper()
	caster, err := isovist.NewCaster(obstacle.NewIndex(set), params)
	if err != nil {
		t.Fatal(err)
	}
	return caster.Cast(viewer, look)
}

func TestAggregateEmptyFan(t *testing.T) {
	stats := Aggregate(nil)
	if stats.TotalRays != 0 {
		t.Errorf("expected 0 total rays, got %d", stats.TotalRays)
	}
	if stats.OpenPercent != 0 || stats.GreenViewFactor != 0 {
		t.Errorf("expected zero ratios, got %f%% open, gvf %f",
			stats.OpenPercent, stats.GreenViewFactor)
	}
}

func TestAggregateEmptySceneFullyOpen(t *testing.T) {
	params := isovist.DefaultParams()
	params.Omnidirectional = true
	hits := castScene(t, obstacle.NewSet(nil, nil), params, geo.Origin, 0)

	stats := Aggregate(hits)
	if stats.OpenRays != stats.TotalRays {
		t.Errorf("expected all %d rays open, got %d", stats.TotalRays, stats.OpenRays)
	}
	if !approxEqual(stats.OpenPercent, 100, tolerance) {
		t.Errorf("expected 100%% open, got %f", stats.OpenPercent)
	}
	if stats.GreenViewFactor != 0 {
		t.Errorf("expected green view factor 0 with no vegetation, got %f", stats.GreenViewFactor)
	}
}

func TestAggregateConservation(t *testing.T) {
	// Mixed scene: every ray is exactly one of open, building, vegetation.
	set := obstacle.NewSet(
		[]obstacle.Polygon{
			obstacle.NewPolygon("b1", "office", geo.NewRing(
				geo.Pt(5, -2), geo.Pt(9, -2), geo.Pt(9, 2), geo.Pt(5, 2))),
			obstacle.NewPolygon("b2", "residential", geo.NewRing(
				geo.Pt(-9, -3), geo.Pt(-5, -3), geo.Pt(-5, 3), geo.Pt(-9, 3))),
		},
		[]obstacle.Circle{
			obstacle.NewCircle("t1", "oak", geo.Pt(0, 8), 3),
			obstacle.NewCircle("t2", "elm", geo.Pt(2, -8), 2),
		},
	)
	params := isovist.DefaultParams()
	params.Omnidirectional = true
	params.MaxDistance = 50
	hits := castScene(t, set, params, geo.Origin, 0)

	stats := Aggregate(hits)
	sum := stats.OpenRays + stats.VegetationRays + stats.BuildingRays()
	if sum != stats.TotalRays {
		t.Errorf("ray counts do not sum: %d + %d + %d != %d",
			stats.OpenRays, stats.VegetationRays, stats.BuildingRays(), stats.TotalRays)
	}
	if stats.BuildingRaysByCategory["office"] == 0 {
		t.Error("expected office rays")
	}
	if stats.BuildingRaysByCategory["residential"] == 0 {
		t.Error("expected residential rays")
	}
	if stats.DistinctBuildings != 2 {
		t.Errorf("expected 2 distinct buildings, got %d", stats.DistinctBuildings)
	}
	if stats.DistinctVegetation != 2 {
		t.Errorf("expected 2 distinct trees, got %d", stats.DistinctVegetation)
	}
}

func TestGreenViewFactorRange(t *testing.T) {
	set := obstacle.NewSet(nil, []obstacle.Circle{
		obstacle.NewCircle("t1", "oak", geo.Pt(0, 5), 3),
	})
	params := isovist.DefaultParams()
	params.FOVDegrees = 60
	params.MaxDistance = 20
	hits := castScene(t, set, params, geo.Origin, 0)

	stats := Aggregate(hits)
	if stats.GreenViewFactor <= 0 || stats.GreenViewFactor > 1 {
		t.Errorf("expected green view factor in (0,1], got %f", stats.GreenViewFactor)
	}
}

func TestGreenViewFactorMonotonicInRadius(t *testing.T) {
	// Holding everything else fixed, a larger canopy must never decrease the
	// green view factor.
	params := isovist.DefaultParams()
	params.FOVDegrees = 60
	params.MaxDistance = 20

	prev := -1.0
	for _, radius := range []float64{0.5, 1, 2, 3, 4} {
		set := obstacle.NewSet(nil, []obstacle.Circle{
			obstacle.NewCircle("t1", "oak", geo.Pt(0, 5), radius),
		})
		stats := Aggregate(castScene(t, set, params, geo.Origin, 0))
		if stats.GreenViewFactor < prev {
			t.Errorf("green view factor decreased from %f to %f at radius %f",
				prev, stats.GreenViewFactor, radius)
		}
		prev = stats.GreenViewFactor
	}
}

func TestAggregateDistinctVsRayCounts(t *testing.T) {
	// One wide building absorbs many rays but counts once.
	set := obstacle.NewSet([]obstacle.Polygon{
		obstacle.NewPolygon("wall", "office", geo.NewRing(
			geo.Pt(-40, 5), geo.Pt(40, 5), geo.Pt(40, 8), geo.Pt(-40, 8))),
	}, nil)
	params := isovist.DefaultParams()
	params.Omnidirectional = true
	params.MaxDistance = 50
	stats := Aggregate(castScene(t, set, params, geo.Origin, 0))

	if stats.BuildingRays() < 10 {
		t.Errorf("expected many building rays, got %d", stats.BuildingRays())
	}
	if stats.DistinctBuildings != 1 {
		t.Errorf("expected 1 distinct building, got %d", stats.DistinctBuildings)
	}
}
