package obstacle

import "github.com/Nodal-Works/isovist/pkg/geo"

// Index answers spatial queries over a Set. The pre-filter is bounding-box
// only: callers get every obstacle whose box overlaps the query region, and
// exact intersection testing is left to the ray caster. The index borrows the
// Set and must not outlive it; both are safe for shared read-only use.
type Index struct {
	set *Set
}

// NewIndex wraps a Set for querying.
func NewIndex(set *Set) *Index {
	return &Index{set: set}
}

// Set returns the underlying obstacle set.
func (ix *Index) Set() *Set {
	return ix.set
}

// CandidatesNear returns the polygon and circle obstacles whose bounding boxes
// overlap the square reach of a viewer at the given position with the given
// maximum view distance. An empty set yields empty (non-nil) slices.
func (ix *Index) CandidatesNear(viewer geo.Point2D, maxDistance float64) ([]*Polygon, []*Circle) {
	reach := BBox{
		Min: geo.Pt(viewer.X-maxDistance, viewer.Y-maxDistance),
		Max: geo.Pt(viewer.X+maxDistance, viewer.Y+maxDistance),
	}

	polys := make([]*Polygon, 0, len(ix.set.Polygons))
	for i := range ix.set.Polygons {
		if ix.set.Polygons[i].Box.Overlaps(reach) {
			polys = append(polys, &ix.set.Polygons[i])
		}
	}
	circles := make([]*Circle, 0, len(ix.set.Circles))
	for i := range ix.set.Circles {
		if ix.set.Circles[i].Box.Overlaps(reach) {
			circles = append(circles, &ix.set.Circles[i])
		}
	}
	return polys, circles
}
