// Package simplify reduces the point count of a generated toolpath while
// bounding three independent error measures: point-to-point deviation,
// minimum segment resolution, and the area swept out by removing any one
// point. It wires github.com/paulmach/orb/simplify's Douglas-Peucker
// reducer for the deviation bound and layers a custom area-deviation pass
// on top, since orb/simplify has no area-based simplifier.
//
// Grounded on original_source/include/utils/Simplify.h.
package simplify

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"wallgen/pkg/geomtypes"
	"wallgen/pkg/junction"
)

// minResolution is the floor below which MaxResolution is never allowed to
// go, matching Simplify.h's min_resolution constant.
const minResolution = 5

// Config mirrors Simplify's three bounds.
type Config struct {
	MaxResolution    int64 // minimum allowed distance between consecutive points
	MaxDeviation     int64 // maximum allowed point-to-line deviation
	MaxAreaDeviation int64 // maximum allowed swept-area error per removed point
}

// clampResolution enforces the min_resolution floor.
func (c Config) clampResolution() int64 {
	if c.MaxResolution < minResolution {
		return minResolution
	}
	return c.MaxResolution
}

// Polyline simplifies an open point sequence, preserving width metadata by
// simplifying positions and re-attaching the nearest surviving junction's
// bead width to each kept point.
func Polyline(line junction.ExtrusionLine, cfg Config) junction.ExtrusionLine {
	if len(line.Junctions) <= 2 {
		return line
	}

	ls := make(orb.LineString, len(line.Junctions))
	for i, j := range line.Junctions {
		ls[i] = j.Pos.ToOrb()
	}

	reducer := simplify.DouglasPeucker(float64(cfg.MaxDeviation))
	reduced := reducer.LineString(ls)

	kept := mapBackToJunctions(reduced, line.Junctions)
	kept = filterByResolution(kept, cfg.clampResolution())
	kept = filterByAreaDeviation(kept, cfg.MaxAreaDeviation)

	out := line
	out.Junctions = kept
	return out
}

// mapBackToJunctions finds, for each simplified point, the original
// junction whose position it came from (orb.Simplify preserves the subset
// of original coordinates it kept, so exact-match lookup is sufficient).
func mapBackToJunctions(reduced orb.LineString, original []junction.Junction) []junction.Junction {
	byPos := make(map[orb.Point]junction.Junction, len(original))
	for _, j := range original {
		byPos[j.Pos.ToOrb()] = j
	}
	out := make([]junction.Junction, 0, len(reduced))
	for _, p := range reduced {
		if j, ok := byPos[p]; ok {
			out = append(out, j)
		} else {
			out = append(out, junction.Junction{Pos: geomtypes.FromOrb(p)})
		}
	}
	return out
}

// filterByResolution removes points spaced closer than maxResolution apart,
// always keeping the first and last point of an open line.
func filterByResolution(pts []junction.Junction, maxResolution int64) []junction.Junction {
	if len(pts) <= 2 {
		return pts
	}
	out := make([]junction.Junction, 0, len(pts))
	out = append(out, pts[0])
	for i := 1; i < len(pts)-1; i++ {
		if pts[i].Pos.DistanceF(out[len(out)-1].Pos) >= float64(maxResolution) {
			out = append(out, pts[i])
		}
	}
	out = append(out, pts[len(pts)-1])
	return out
}

// filterByAreaDeviation removes a point if the triangular area it would
// sweep out (between its two neighbors) is below maxAreaDeviation, the
// detectSmall-style area test Simplify.h runs alongside its deviation check.
func filterByAreaDeviation(pts []junction.Junction, maxAreaDeviation int64) []junction.Junction {
	if maxAreaDeviation <= 0 || len(pts) <= 2 {
		return pts
	}
	out := make([]junction.Junction, 0, len(pts))
	out = append(out, pts[0])
	for i := 1; i < len(pts)-1; i++ {
		prev := out[len(out)-1].Pos
		next := pts[i+1].Pos
		cur := pts[i].Pos
		area := triangleArea2(prev, cur, next) / 2
		if area >= float64(maxAreaDeviation) {
			out = append(out, pts[i])
		}
	}
	out = append(out, pts[len(pts)-1])
	return out
}

func triangleArea2(a, b, c geomtypes.Point) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	cross := ab.Cross(ac)
	if cross < 0 {
		cross = -cross
	}
	return float64(cross)
}
