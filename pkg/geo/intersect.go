package geo

import "math"

// parallelEps is the determinant magnitude below which two segments are
// treated as parallel and reported as non-intersecting.
const parallelEps = 1e-10

// SegmentIntersection returns the intersection point of segments (p1,p2) and
// (p3,p4), if any. Parallel segments never intersect, even when collinear and
// overlapping: a grazing ray along a wall face carries no visibility
// information worth resolving.
func SegmentIntersection(p1, p2, p3, p4 Point2D) (Point2D, bool) {
	d := (p2.X-p1.X)*(p4.Y-p3.Y) - (p2.Y-p1.Y)*(p4.X-p3.X)
	if math.Abs(d) < parallelEps {
		return Point2D{}, false
	}
	t := ((p3.X-p1.X)*(p4.Y-p3.Y) - (p3.Y-p1.Y)*(p4.X-p3.X)) / d
	u := ((p3.X-p1.X)*(p2.Y-p1.Y) - (p3.Y-p1.Y)*(p2.X-p1.X)) / d
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point2D{}, false
	}
	return p1.Lerp(p2, t), true
}

// RayCircleIntersection returns the intersection of the segment from rayStart
// to rayEnd with the circle boundary that lies nearest to rayStart. The
// segment is parametrized as rayStart + t*(rayEnd-rayStart) and only roots
// with t in [0,1] count.
func RayCircleIntersection(rayStart, rayEnd, center Point2D, radius float64) (Point2D, bool) {
	d := rayEnd.Sub(rayStart)
	f := rayStart.Sub(center)

	a := d.Dot(d)
	if a < 1e-12 {
		// Zero-length ray.
		return Point2D{}, false
	}
	b := 2 * f.Dot(d)
	c := f.Dot(f) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return Point2D{}, false
	}

	sqrtDisc := math.Sqrt(disc)
	// The smaller root is nearer to rayStart; try it first.
	for _, t := range []float64{(-b - sqrtDisc) / (2 * a), (-b + sqrtDisc) / (2 * a)} {
		if t >= 0 && t <= 1 {
			return rayStart.Lerp(rayEnd, t), true
		}
	}
	return Point2D{}, false
}
