// Package obstacle holds the static scene geometry the isovist engine casts
// rays against: building footprints as closed polygon rings and tree canopies
// as circles. A Set is built once per scene load and is read-only afterward;
// bounding boxes are precomputed at construction so per-frame queries never
// recompute them.
package obstacle

import "github.com/Nodal-Works/isovist/pkg/geo"

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min geo.Point2D `json:"min"`
	Max geo.Point2D `json:"max"`
}

// Overlaps returns true if the two boxes overlap (touching counts).
func (b BBox) Overlaps(o BBox) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// Polygon is a solid polygonal obstacle, typically a building footprint.
// The ring is assumed simple (non-self-intersecting); the engine does not
// validate this.
type Polygon struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Ring     geo.Ring `json:"ring"`
	Box      BBox     `json:"box"`
}

// Circle is a circular obstacle, typically a tree canopy. Circles obstruct
// sight lines but are not solid for viewer placement.
type Circle struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Center geo.Point2D `json:"center"`
	Radius float64     `json:"radius"`
	Box    BBox        `json:"box"`
}

// Set is the complete obstacle collection for one scene.
type Set struct {
	Polygons []Polygon
	Circles  []Circle
}

// NewPolygon builds a polygon obstacle with its bounding box.
func NewPolygon(id, category string, ring geo.Ring) Polygon {
	mn, mx := ring.BoundingBox()
	return Polygon{ID: id, Category: category, Ring: ring, Box: BBox{Min: mn, Max: mx}}
}

// NewCircle builds a circular obstacle with its bounding box.
func NewCircle(id, label string, center geo.Point2D, radius float64) Circle {
	return Circle{
		ID:     id,
		Label:  label,
		Center: center,
		Radius: radius,
		Box: BBox{
			Min: geo.Pt(center.X-radius, center.Y-radius),
			Max: geo.Pt(center.X+radius, center.Y+radius),
		},
	}
}

// NewSet builds a Set from prepared obstacles.
func NewSet(polygons []Polygon, circles []Circle) *Set {
	return &Set{Polygons: polygons, Circles: circles}
}
