package voronoi

import (
	"math"

	"wallgen/pkg/geomtypes"
)

// DiscretizeParabola samples the analytic parabolic bisector of point and
// segment between the two already-known curve endpoints s and e, inserting
// extra vertices at the marking-angle breakpoints used by central-edge
// marking downstream.
//
// Ported method-for-method (not line-for-line) from
// VoronoiUtils::discretizeParabola in the original CuraEngine source: given
// a point site p and a segment site ab, the bisector in the coordinate frame
// where pxx (p's projection onto ab) is the origin and the perpendicular to
// ab is the y-axis is the parabola y = x²/(2d) + d/2, where d is the
// distance from p to line ab. transitioningAngle controls where along the
// curve the "marking start"/"marking end" breakpoints fall; approximateStepSize
// bounds the chord spacing of the sampled interior points.
func DiscretizeParabola(p geomtypes.Point, seg geomtypes.Segment, s, e geomtypes.Point, approximateStepSize int64, transitioningAngle float64) []geomtypes.Point {
	a, b := seg.A, seg.B
	ab := b.Sub(a)
	abSize := ab.LengthF()
	if abSize == 0 {
		return []geomtypes.Point{s, e}
	}

	as := s.Sub(a)
	ae := e.Sub(a)
	sx := float64(as.Dot(ab)) / abSize
	ex := float64(ae.Dot(ab)) / abSize
	sxex := ex - sx

	ap := p.Sub(a)
	px := float64(ap.Dot(ab)) / abSize

	// pxx: projection of p onto line ab.
	t := float64(ap.Dot(ab)) / (abSize * abSize)
	pxx := geomtypes.Point{
		X: a.X + geomtypes.Coord(math.Round(float64(ab.X)*t)),
		Y: a.Y + geomtypes.Coord(math.Round(float64(ab.Y)*t)),
	}
	ppxx := pxx.Sub(p)
	d := ppxx.LengthF()

	if d == 0 {
		return []geomtypes.Point{s, e}
	}

	// rot: rotate so that ppxx points along +y. unapply maps (x,y) in that
	// frame back to world coordinates.
	ux, uy := ppxx.Normalized()      // world-space unit vector along ppxx (+y in local frame)
	rightX, rightY := uy, -ux        // perpendicular, local +x axis in world space
	unapply := func(lx, ly float64) geomtypes.Point {
		return geomtypes.Point{
			X: pxx.X + geomtypes.Coord(math.Round(lx*rightX+ly*ux)),
			Y: pxx.Y + geomtypes.Coord(math.Round(lx*rightY+ly*uy)),
		}
	}

	markingBound := math.Atan(transitioningAngle * 0.5)
	msx := -markingBound * d
	mex := markingBound * d
	markingStartEndH := msx*msx/(2*d) + d/2
	markingStart := unapply(msx, markingStartEndH)
	markingEnd := unapply(mex, markingStartEndH)

	dir := 1.0
	if sx > ex {
		dir = -1
	}
	if dir < 0 {
		markingStart, markingEnd = markingEnd, markingStart
		msx, mex = mex, msx
	}

	addMarkingStart := msx*dir > (sx-px)*dir && msx*dir < (ex-px)*dir
	addMarkingEnd := mex*dir > (sx-px)*dir && mex*dir < (ex-px)*dir

	apex := unapply(0, d/2)
	addApex := (sx-px)*dir < 0 && (ex-px)*dir > 0

	stepCount := int64(math.Abs(ex-sx)/float64(approximateStepSize) + 0.5)
	if stepCount < 1 {
		stepCount = 1
	}

	discretized := make([]geomtypes.Point, 0, stepCount+3)
	discretized = append(discretized, s)
	for step := int64(1); step < stepCount; step++ {
		x := sx + sxex*float64(step)/float64(stepCount) - px
		y := x*x/(2*d) + d/2

		if addMarkingStart && msx*dir < x*dir {
			discretized = append(discretized, markingStart)
			addMarkingStart = false
		}
		if addApex && x*dir > 0 {
			discretized = append(discretized, apex)
			addApex = false
		}
		if addMarkingEnd && mex*dir < x*dir {
			discretized = append(discretized, markingEnd)
			addMarkingEnd = false
		}
		discretized = append(discretized, unapply(x, y))
	}
	if addApex {
		discretized = append(discretized, apex)
	}
	if addMarkingEnd {
		discretized = append(discretized, markingEnd)
	}
	discretized = append(discretized, e)
	return discretized
}
