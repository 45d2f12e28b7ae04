package geomtypes

import (
	"math"

	"github.com/paulmach/orb"
)

// Polygon is a closed ring of points; the first point is not repeated at
// the end. A positive SignedArea2 means counter-clockwise winding.
type Polygon []Point

// Region is a polygon with holes: Outer is CCW-wound, Holes are each CW-wound,
// matching the convention the skeletal trapezoidation algorithm expects for
// its source Voronoi diagram (outer boundary and hole boundaries processed
// uniformly as "polygon edges").
type Region struct {
	Outer Polygon
	Holes []Polygon
}

// AllRings returns the outer boundary followed by all holes, in the order
// the Voronoi-diagram builder consumes them as segment sources.
func (r Region) AllRings() []Polygon {
	out := make([]Polygon, 0, 1+len(r.Holes))
	out = append(out, r.Outer)
	out = append(out, r.Holes...)
	return out
}

// SignedArea2 returns twice the signed area of the polygon (positive if CCW).
// Returning 2×area avoids a division until callers actually need it.
func (p Polygon) SignedArea2() int64 {
	if len(p) < 3 {
		return 0
	}
	var sum int64
	n := len(p)
	for i := 0; i < n; i++ {
		a := p[i]
		b := p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// IsCCW reports whether the polygon is wound counter-clockwise.
func (p Polygon) IsCCW() bool { return p.SignedArea2() > 0 }

// Reversed returns the polygon with reversed point order (flips winding).
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// AreaF returns the unsigned area as a float64.
func (p Polygon) AreaF() float64 {
	a := p.SignedArea2()
	if a < 0 {
		a = -a
	}
	return float64(a) / 2
}

// ToOrbRing converts the polygon to a closed orb.Ring (first point repeated
// at the end, as orb requires for rings).
func (p Polygon) ToOrbRing() orb.Ring {
	ring := make(orb.Ring, 0, len(p)+1)
	for _, pt := range p {
		ring = append(ring, pt.ToOrb())
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}

// Segment is a directed line segment used as a Voronoi source.
type Segment struct {
	A, B Point
}

// LengthF returns the Euclidean length of the segment.
func (s Segment) LengthF() float64 { return s.A.DistanceF(s.B) }

// PointToSegmentDistance computes the perpendicular distance from point p to
// segment ab, and the clamped projection ratio t in [0,1] along ab.
//
// Grounded on pkg/geo/haversine.go's PointToSegmentDist, generalized from
// lat/lon great-circle projection to planar fixed-point coordinates.
func PointToSegmentDistance(p, a, b Point) (dist float64, t float64) {
	if a == b {
		return p.DistanceF(a), 0
	}

	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	px, py := float64(p.X), float64(p.Y)

	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.DistanceF(a), 0
	}

	t = ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closeX := ax + t*dx
	closeY := ay + t*dy
	return math.Hypot(px-closeX, py-closeY), t
}

// AABB is an axis-aligned bounding box in fixed-point coordinates.
type AABB struct {
	MinX, MinY, MaxX, MaxY Coord
}

// Empty returns an AABB with inverted bounds, ready to be Expand()ed.
func Empty() AABB {
	return AABB{MinX: math.MaxInt64, MinY: math.MaxInt64, MaxX: math.MinInt64, MaxY: math.MinInt64}
}

// Expand grows the box to include p.
func (b AABB) Expand(p Point) AABB {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}

// ForPolygon returns the bounding box of a polygon.
func ForPolygon(p Polygon) AABB {
	b := Empty()
	for _, pt := range p {
		b = b.Expand(pt)
	}
	return b
}

// Contains reports whether p lies within the box (inclusive).
func (b AABB) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}
