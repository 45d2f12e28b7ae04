// Package geomtypes defines the fixed-point planar geometry types shared by
// every wall-generation package: points and polygons in micrometer integer
// coordinates, with float64 interop at the orb boundary.
package geomtypes

import (
	"math"

	"github.com/paulmach/orb"
)

// Coord is a fixed-point coordinate in micrometers. Using integers instead
// of floats keeps Voronoi vertex comparisons and small-edge collapse
// thresholds exact and reproducible across platforms.
type Coord = int64

// Point is a 2D point in fixed-point coordinates.
type Point struct {
	X, Y Coord
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by a float factor, rounded to the nearest integer.
func (p Point) Scale(f float64) Point {
	return Point{
		X: Coord(math.Round(float64(p.X) * f)),
		Y: Coord(math.Round(float64(p.Y) * f)),
	}
}

// Dot returns the dot product p·q.
func (p Point) Dot(q Point) int64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the 2D cross product p×q (z-component).
func (p Point) Cross(q Point) int64 { return p.X*q.Y - p.Y*q.X }

// LengthF returns the Euclidean length of p as a vector, in float64 micrometers.
func (p Point) LengthF() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// DistanceF returns the Euclidean distance between p and q.
func (p Point) DistanceF(q Point) float64 {
	return p.Sub(q).LengthF()
}

// ToOrb converts p to an orb.Point for use with orb-based algorithms
// (simplification, spatial indexing).
func (p Point) ToOrb() orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

// FromOrb converts an orb.Point back to a fixed-point Point, rounding to the
// nearest micrometer.
func FromOrb(o orb.Point) Point {
	return Point{Coord(math.Round(o[0])), Coord(math.Round(o[1]))}
}

// Normalized returns a unit-length float64 direction vector for p, or the
// zero vector if p has zero length.
func (p Point) Normalized() (float64, float64) {
	l := p.LengthF()
	if l == 0 {
		return 0, 0
	}
	return float64(p.X) / l, float64(p.Y) / l
}

// Lerp returns the point a fraction t of the way from p to q.
func Lerp(p, q Point, t float64) Point {
	return Point{
		X: p.X + Coord(math.Round(float64(q.X-p.X)*t)),
		Y: p.Y + Coord(math.Round(float64(q.Y-p.Y)*t)),
	}
}
