package obstacle

import (
	"testing"

	"github.com/Nodal-Works/isovist/pkg/geo"
)

func squareBuilding(id string, minX, minY, size float64) Polygon {
	return NewPolygon(id, "residential", geo.NewRing(
		geo.Pt(minX, minY),
		geo.Pt(minX+size, minY),
		geo.Pt(minX+size, minY+size),
		geo.Pt(minX, minY+size),
	))
}

func TestBBoxOverlaps(t *testing.T) {
	a := BBox{Min: geo.Pt(0, 0), Max: geo.Pt(10, 10)}
	b := BBox{Min: geo.Pt(5, 5), Max: geo.Pt(15, 15)}
	c := BBox{Min: geo.Pt(11, 0), Max: geo.Pt(20, 10)}
	if !a.Overlaps(b) {
		t.Error("expected overlap")
	}
	if a.Overlaps(c) {
		t.Error("expected no overlap")
	}
	// Touching edges count as overlapping.
	d := BBox{Min: geo.Pt(10, 0), Max: geo.Pt(20, 10)}
	if !a.Overlaps(d) {
		t.Error("expected touching boxes to overlap")
	}
}

func TestNewCircleBoundingBox(t *testing.T) {
	c := NewCircle("tree_1", "oak", geo.Pt(10, 20), 3)
	if c.Box.Min.X != 7 || c.Box.Min.Y != 17 || c.Box.Max.X != 13 || c.Box.Max.Y != 23 {
		t.Errorf("unexpected bounding box: %+v", c.Box)
	}
}

func TestCandidatesNearFiltersFarObstacles(t *testing.T) {
	set := NewSet(
		[]Polygon{
			squareBuilding("near", 20, 20, 10),
			squareBuilding("far", 500, 500, 10),
		},
		[]Circle{
			NewCircle("tree_near", "", geo.Pt(-30, 0), 4),
			NewCircle("tree_far", "", geo.Pt(-900, 0), 4),
		},
	)
	ix := NewIndex(set)

	polys, circles := ix.CandidatesNear(geo.Origin, 100)
	if len(polys) != 1 || polys[0].ID != "near" {
		t.Errorf("expected only the near building, got %d polygons", len(polys))
	}
	if len(circles) != 1 || circles[0].ID != "tree_near" {
		t.Errorf("expected only the near tree, got %d circles", len(circles))
	}
}

func TestCandidatesNearEmptySet(t *testing.T) {
	ix := NewIndex(NewSet(nil, nil))
	polys, circles := ix.CandidatesNear(geo.Origin, 100)
	if polys == nil || circles == nil {
		t.Fatal("expected non-nil slices for empty set")
	}
	if len(polys) != 0 || len(circles) != 0 {
		t.Errorf("expected empty results, got %d polygons, %d circles", len(polys), len(circles))
	}
}

func TestInsideAny(t *testing.T) {
	ix := NewIndex(NewSet([]Polygon{squareBuilding("b", 5, -1, 2)}, []Circle{
		NewCircle("tree", "", geo.Pt(0, 5), 3),
	}))

	if !ix.InsideAny(geo.Pt(6, 0)) {
		t.Error("expected (6,0) inside building")
	}
	if ix.InsideAny(geo.Pt(0, 0)) {
		t.Error("expected origin outside")
	}
	// Trees are not solid for placement.
	if ix.InsideAny(geo.Pt(0, 5)) {
		t.Error("expected tree center to not block placement")
	}
}

func TestNearestOpenPositionAlreadyValid(t *testing.T) {
	ix := NewIndex(NewSet([]Polygon{squareBuilding("b", 5, -1, 2)}, nil))
	p, ok := ix.NearestOpenPosition(geo.Pt(0, 0), 50)
	if !ok {
		t.Fatal("expected success")
	}
	if p != geo.Pt(0, 0) {
		t.Errorf("expected unchanged point, got (%f,%f)", p.X, p.Y)
	}
}

func TestNearestOpenPositionEscapesBuilding(t *testing.T) {
	// Building spanning (5,-1)-(7,1); viewer trapped at (6,0).
	ix := NewIndex(NewSet([]Polygon{NewPolygon("b", "office", geo.NewRing(
		geo.Pt(5, -1), geo.Pt(5, 1), geo.Pt(7, 1), geo.Pt(7, -1),
	))}, nil))

	p, ok := ix.NearestOpenPosition(geo.Pt(6, 0), 50)
	if !ok {
		t.Fatal("expected an open position within the search radius")
	}
	if ix.InsideAny(p) {
		t.Errorf("returned position (%f,%f) is still inside an obstacle", p.X, p.Y)
	}
}

func TestNearestOpenPositionExhausted(t *testing.T) {
	// A building so large no search ring escapes it.
	ix := NewIndex(NewSet([]Polygon{squareBuilding("huge", -1000, -1000, 2000)}, nil))
	start := geo.Pt(0, 0)
	p, ok := ix.NearestOpenPosition(start, 30)
	if ok {
		t.Fatal("expected soft failure")
	}
	if p != start {
		t.Errorf("expected original point back, got (%f,%f)", p.X, p.Y)
	}
}
