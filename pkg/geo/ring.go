package geo

import "math"

// Ring is a closed polygon boundary defined by its vertices in order. The
// closing edge from the last vertex back to the first is implicit; callers may
// also supply an explicitly closed ring (first == last) and Edge handles both.
type Ring struct {
	Vertices []Point2D `json:"vertices"`
}

// NewRing creates a ring from a list of vertices.
func NewRing(pts ...Point2D) Ring {
	return Ring{Vertices: pts}
}

// Len returns the number of vertices.
func (r Ring) Len() int {
	return len(r.Vertices)
}

// IsEmpty returns true if the ring has fewer than 3 vertices.
func (r Ring) IsEmpty() bool {
	return len(r.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (r Ring) Edge(i int) (Point2D, Point2D) {
	n := len(r.Vertices)
	return r.Vertices[i%n], r.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (r Ring) SignedArea() float64 {
	n := len(r.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += r.Vertices[i].X * r.Vertices[j].Y
		area -= r.Vertices[j].X * r.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the ring.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Centroid returns the centroid of the ring.
func (r Ring) Centroid() Point2D {
	n := len(r.Vertices)
	if n == 0 {
		return Point2D{}
	}
	a := r.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		// Degenerate: return vertex average.
		sum := Point2D{}
		for _, v := range r.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := r.Vertices[i].X*r.Vertices[j].Y - r.Vertices[j].X*r.Vertices[i].Y
		cx += (r.Vertices[i].X + r.Vertices[j].X) * cross
		cy += (r.Vertices[i].Y + r.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (r Ring) BoundingBox() (Point2D, Point2D) {
	if len(r.Vertices) == 0 {
		return Point2D{}, Point2D{}
	}
	minP := r.Vertices[0]
	maxP := r.Vertices[0]
	for _, v := range r.Vertices[1:] {
		if v.X < minP.X {
			minP.X = v.X
		}
		if v.Y < minP.Y {
			minP.Y = v.Y
		}
		if v.X > maxP.X {
			maxP.X = v.X
		}
		if v.Y > maxP.Y {
			maxP.Y = v.Y
		}
	}
	return minP, maxP
}

// Contains returns true if the point is inside the ring using the even-odd
// ray-casting rule. Points exactly on the boundary may report either side.
func (r Ring) Contains(pt Point2D) bool {
	n := len(r.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := r.Vertices[i]
		vj := r.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Perimeter returns the total perimeter length.
func (r Ring) Perimeter() float64 {
	n := len(r.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += r.Vertices[i].Distance(r.Vertices[j])
	}
	return total
}
