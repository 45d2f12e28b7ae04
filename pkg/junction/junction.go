// Package junction generates bead-center junctions along the trapezoidation
// graph's edges and stitches them into toolpath lines (ExtrusionLines) per
// bead/inset index; a line is marked closed when its two ends meet.
//
// Grounded on pkg/routing/unpack.go's iterative stack-based path
// reconstruction (adapted here to iteratively extend a stitched chain
// instead of unpacking CH shortcuts) and pkg/routing/snap.go's spatial grid
// (replaced with github.com/tidwall/rtree, since toolpath stitching needs
// arbitrary nearest-neighbor queries rather than a fixed lat/lon grid).
package junction

import (
	"sort"

	"github.com/tidwall/rtree"

	"wallgen/pkg/geomtypes"
	"wallgen/pkg/propagate"
	"wallgen/pkg/skeleton"
)

// Junction is one bead-center point where a toolpath line passes, carrying
// the bead width at that point (so the extruder can vary flow along the
// line).
type Junction struct {
	Pos      geomtypes.Point
	Width    int64
	InsetIdx int
}

// ExtrusionLine is one continuous toolpath for a single inset (bead) index.
// Mirrors original_source/include/utils/ExtrusionLine.h.
type ExtrusionLine struct {
	InsetIdx  int
	IsOdd     bool
	IsClosed  bool
	Junctions []Junction
}

// IsOuterWall reports whether this line is the outermost perimeter (inset 0).
func (l ExtrusionLine) IsOuterWall() bool { return l.InsetIdx == 0 }

// Size returns the number of junctions in the line.
func (l ExtrusionLine) Size() int { return len(l.Junctions) }

// Empty reports whether the line has fewer than 2 junctions.
func (l ExtrusionLine) Empty() bool { return len(l.Junctions) < 2 }

// Config mirrors the snap_dist field of SkeletalTrapezoidationConfig: the
// distance within which two loop endpoints are considered the same point
// and merged to close a loop.
type Config struct {
	SnapDist int64
}

// GenerateJunctions walks every central, non-rib edge of g once (regardless
// of which of its two directed half-edges is encountered first) and, for
// each bead index present in the node beadings at both endpoints, emits a
// Junction interpolated along the edge at that bead's offset from the
// centerline. The returned list for a physical edge is ordered from its
// high-distance end to its low-distance end (§4.7) and is reachable under
// either directed EdgeID, so face-based stitching can look it up regardless
// of which direction a face's boundary walk used. Mirrors
// generateJunctions/getJunctions.
func GenerateJunctions(g *skeleton.Graph, beadings []propagate.NodeBeading) map[skeleton.EdgeID][]Junction {
	perEdge := make(map[skeleton.EdgeID][]Junction)
	processed := make([]bool, len(g.Edges))

	for i := range g.Edges {
		if processed[i] {
			continue
		}
		e := g.Edges[i]
		processed[i] = true
		if e.Twin != skeleton.NoEdge {
			processed[e.Twin] = true
		}
		if e.IsExtraRib || !e.IsCentral {
			continue
		}

		fromDist := g.Nodes[e.From].DistToBoundary
		toDist := g.Nodes[e.To].DistToBoundary
		if fromDist == toDist {
			// Constant-radius skeleton segment: no bead offset crosses it;
			// its junctions come from the adjacent ribs instead (§4.7).
			continue
		}

		hiPos, loPos := g.Nodes[e.From].Pos, g.Nodes[e.To].Pos
		hiB, loB := beadings[e.From].Beading, beadings[e.To].Beading
		hiDist, loDist := fromDist, toDist
		if toDist > fromDist {
			hiPos, loPos = g.Nodes[e.To].Pos, g.Nodes[e.From].Pos
			hiB, loB = beadings[e.To].Beading, beadings[e.From].Beading
			hiDist, loDist = toDist, fromDist
		}

		n := hiB.BeadCount()
		if loB.BeadCount() < n {
			n = loB.BeadCount()
		}

		var junctions []Junction
		for idx := 0; idx < n; idx++ {
			width := (hiB.Beads[idx].Width + loB.Beads[idx].Width) / 2
			offset := float64(hiB.BeadOffset(idx)+loB.BeadOffset(idx)) / 2
			t := (offset - loDist) / (hiDist - loDist) // t=0 at loPos, t=1 at hiPos
			if t < 0 || t > 1 {
				continue
			}
			pos := geomtypes.Lerp(loPos, hiPos, t)
			junctions = append(junctions, Junction{Pos: pos, Width: width, InsetIdx: idx})
		}
		// junctions were appended in ascending inset-idx (= ascending offset
		// = ascending t, i.e. low-to-high distance) order; reverse so the
		// stored order runs high-to-low as §4.7 specifies.
		for lo, hi := 0, len(junctions)-1; lo < hi; lo, hi = lo+1, hi-1 {
			junctions[lo], junctions[hi] = junctions[hi], junctions[lo]
		}

		if len(junctions) == 0 {
			continue
		}
		perEdge[skeleton.EdgeID(i)] = junctions
		if e.Twin != skeleton.NoEdge {
			perEdge[e.Twin] = junctions
		}
	}

	return perEdge
}

// Segment is one face's contribution to a single inset's toolpath: the pair
// of junctions on that face's high-distance and low-distance skeletal
// edges, for one shared bead index.
type Segment struct {
	A, B Junction
}

// BuildFaceSegments enumerates every closed face of g (via its Next/Prev
// half-edge cycles — the rib-delimited trapezoid faces §4.8 describes) and,
// for each face with two skeletal (central, non-rib) boundary edges, pairs
// up the junctions they share an inset index with into a Segment. This
// replaces stitching junctions by raw spatial proximity across the whole
// graph with stitching across the graph's actual face adjacency, so two
// topologically unrelated loops that merely pass near each other can no
// longer be chained together by accident.
func BuildFaceSegments(g *skeleton.Graph, perEdge map[skeleton.EdgeID][]Junction) map[int][]Segment {
	out := make(map[int][]Segment)

	for _, face := range enumerateFaces(g) {
		var skel []skeleton.EdgeID
		for _, eid := range face {
			e := g.Edges[eid]
			if e.IsExtraRib || !e.IsCentral {
				continue
			}
			if len(perEdge[eid]) == 0 {
				continue
			}
			skel = append(skel, eid)
		}
		// A proper trapezoid face contributes exactly one high-distance and
		// one low-distance skeletal edge; faces with fewer (an outline
		// corner, where the "low" side degenerates to a point) have nothing
		// to pair and contribute no segment.
		if len(skel) < 2 {
			continue
		}
		sort.Slice(skel, func(i, j int) bool {
			return edgeAvgDist(g, skel[i]) > edgeAvgDist(g, skel[j])
		})
		high, low := skel[0], skel[1]

		lowByInset := make(map[int]Junction, len(perEdge[low]))
		for _, j := range perEdge[low] {
			lowByInset[j.InsetIdx] = j
		}
		for _, hj := range perEdge[high] {
			if lj, ok := lowByInset[hj.InsetIdx]; ok {
				out[hj.InsetIdx] = append(out[hj.InsetIdx], Segment{A: hj, B: lj})
			}
		}
	}

	return out
}

func edgeAvgDist(g *skeleton.Graph, e skeleton.EdgeID) float64 {
	ed := g.Edges[e]
	return (g.Nodes[ed.From].DistToBoundary + g.Nodes[ed.To].DistToBoundary) / 2
}

// enumerateFaces walks every half-edge's Next cycle once, returning each
// distinct closed loop of half-edges it finds. Every half-edge belongs to
// exactly one such loop (the face immediately to its left), so this visits
// every face of g exactly once.
func enumerateFaces(g *skeleton.Graph) [][]skeleton.EdgeID {
	visited := make([]bool, len(g.Edges))
	var faces [][]skeleton.EdgeID

	for i := range g.Edges {
		if visited[i] {
			continue
		}
		start := skeleton.EdgeID(i)
		var loop []skeleton.EdgeID
		cur := start
		for {
			if visited[cur] {
				break
			}
			visited[cur] = true
			loop = append(loop, cur)
			cur = g.Edges[cur].Next
			if cur == skeleton.NoEdge || cur == start {
				break
			}
		}
		if len(loop) > 0 {
			faces = append(faces, loop)
		}
	}
	return faces
}

// Stitch connects each inset's face segments into ExtrusionLines, extending
// a chain's tail to the next segment whose high-distance endpoint lies
// within cfg.SnapDist, and closing a loop whenever the resulting chain's
// first and last junctions end up within the same tolerance. Mirrors
// connectJunctions, but chaining whole face segments (derived from graph
// adjacency) rather than raw per-point nearest-neighbor search.
func Stitch(perInset map[int][]Segment, cfg Config) []ExtrusionLine {
	var lines []ExtrusionLine

	insetIndices := make([]int, 0, len(perInset))
	for idx := range perInset {
		insetIndices = append(insetIndices, idx)
	}
	sort.Ints(insetIndices)

	for _, idx := range insetIndices {
		segs := perInset[idx]
		if len(segs) == 0 {
			continue
		}
		lines = append(lines, stitchOneInset(segs, idx, cfg)...)
	}
	return lines
}

func stitchOneInset(segs []Segment, insetIdx int, cfg Config) []ExtrusionLine {
	used := make([]bool, len(segs))
	var idx rtree.RTreeG[int]
	for i, s := range segs {
		p := [2]float64{float64(s.A.Pos.X), float64(s.A.Pos.Y)}
		idx.Insert(p, p, i)
	}

	var out []ExtrusionLine
	for i := range segs {
		if used[i] {
			continue
		}
		line := ExtrusionLine{InsetIdx: insetIdx, IsOdd: insetIdx%2 == 1}
		line.Junctions = append(line.Junctions, segs[i].A, segs[i].B)
		used[i] = true

		for {
			tail := line.Junctions[len(line.Junctions)-1]
			next := nearestUnusedSegment(idx, segs, used, tail.Pos, cfg.SnapDist)
			if next == -1 {
				break
			}
			line.Junctions = append(line.Junctions, segs[next].B)
			used[next] = true
		}

		if len(line.Junctions) >= 2 {
			first := line.Junctions[0].Pos
			last := line.Junctions[len(line.Junctions)-1].Pos
			if first.DistanceF(last) <= float64(cfg.SnapDist) {
				line.IsClosed = true
			}
		}
		out = append(out, line)
	}
	return out
}

func nearestUnusedSegment(idx rtree.RTreeG[int], segs []Segment, used []bool, tail geomtypes.Point, maxDist int64) int {
	lo := [2]float64{float64(tail.X - maxDist), float64(tail.Y - maxDist)}
	hi := [2]float64{float64(tail.X + maxDist), float64(tail.Y + maxDist)}

	best := -1
	bestDist := float64(maxDist) + 1
	idx.Search(lo, hi, func(_, _ [2]float64, i int) bool {
		if used[i] {
			return true
		}
		d := tail.DistanceF(segs[i].A.Pos)
		if d <= float64(maxDist) && d < bestDist {
			bestDist = d
			best = i
		}
		return true
	})
	return best
}

// OptimizeOrder returns a copy of lines sorted by inset index: innermost
// first when preferInnerFirst is set, outer wall first otherwise. The sort is
// stable, so lines of the same inset keep their input order; travel between
// them is not minimized.
// Grounded on original_source/src/BeadingOrderOptimizer.h.
func OptimizeOrder(lines []ExtrusionLine, preferInnerFirst bool) []ExtrusionLine {
	out := make([]ExtrusionLine, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool {
		if preferInnerFirst {
			return out[i].InsetIdx > out[j].InsetIdx
		}
		return out[i].InsetIdx < out[j].InsetIdx
	})
	return out
}

// LocalMaximaSingleBeads returns a synthetic single-point ExtrusionLine for
// every node that is absent from touched and whose beading has at least one
// bead (e.g. the tip of a blind branch one edge long). It does not check
// whether the node is a local maximum of distance-to-boundary; the touched
// set alone decides which nodes are skipped. Mirrors
// generateLocalMaximaSingleBeads.
func LocalMaximaSingleBeads(g *skeleton.Graph, beadings []propagate.NodeBeading, touched map[skeleton.NodeID]bool) []ExtrusionLine {
	var out []ExtrusionLine
	for i := range g.Nodes {
		n := skeleton.NodeID(i)
		if touched[n] {
			continue
		}
		b := beadings[n].Beading
		if b.BeadCount() == 0 {
			continue
		}
		out = append(out, ExtrusionLine{
			InsetIdx: 0,
			Junctions: []Junction{{
				Pos:   g.Nodes[n].Pos,
				Width: b.Beads[0].Width,
			}},
		})
	}
	return out
}
