package isovist

import (
	"math"

	"github.com/Nodal-Works/isovist/pkg/geo"
)

// BuildPolygon assembles the visibility polygon from an ordered ray fan. In
// cone mode the viewer's own position is the first and last vertex, closing
// the fan into a pie slice; omnidirectional fans already sweep the full circle
// and close implicitly from last vertex back to first.
func BuildPolygon(viewer geo.Point2D, hits []RayHit, omnidirectional bool) geo.Ring {
	verts := make([]geo.Point2D, 0, len(hits)+2)
	if !omnidirectional {
		verts = append(verts, viewer)
	}
	for _, h := range hits {
		verts = append(verts, geo.Destination(viewer, h.Distance, h.Angle*180/math.Pi))
	}
	if !omnidirectional {
		verts = append(verts, viewer)
	}
	return geo.Ring{Vertices: verts}
}

// BuildBands assembles the stack of concentric band polygons used for
// distance-based shading. Band b clamps every ray to maxDistance*(b+1)/count,
// so bands are nested from innermost (index 0) outward by construction.
func BuildBands(viewer geo.Point2D, hits []RayHit, params Params, count int) []geo.Ring {
	if count <= 0 {
		count = DefaultBandCount
	}
	bands := make([]geo.Ring, 0, count)
	for b := 0; b < count; b++ {
		limit := params.MaxDistance * float64(b+1) / float64(count)
		verts := make([]geo.Point2D, 0, len(hits)+2)
		if !params.Omnidirectional {
			verts = append(verts, viewer)
		}
		for _, h := range hits {
			verts = append(verts, geo.Destination(viewer, math.Min(h.Distance, limit), h.Angle*180/math.Pi))
		}
		if !params.Omnidirectional {
			verts = append(verts, viewer)
		}
		bands = append(bands, geo.Ring{Vertices: verts})
	}
	return bands
}
