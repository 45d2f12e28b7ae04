// Package transition plans and applies bead-count transitions: the places
// along the skeleton where the number of wall beads has to change because
// the local thickness crossed an OptimalBeadCount boundary. Transitions are
// smoothed over a bounded stretch of the graph rather than happening at a
// single point, so a wall's bead count changes gradually instead of
// snapping.
//
// Grounded on SkeletalTrapezoidation's TransitionMiddle/TransitionEnd
// generation (original_source/src/SkeletalTrapezoidation.{h,cpp}); the
// bounded dissolve search reuses pkg/ch/witness.go's touched-list-reset
// pattern, here walking the trapezoidation graph instead of a road graph.
package transition

import (
	"wallgen/pkg/beading"
	"wallgen/pkg/skeleton"
)

// Middle is a candidate transition point partway along an edge, generated
// wherever the strategy's optimal bead count for the local thickness
// differs from its neighbor's.
type Middle struct {
	Edge            skeleton.EdgeID
	Pos             float64 // 0..1 position along the edge
	LowerBeadCount  int
}

// End is where a transition actually begins/ends once Middles have been
// filtered and paired; IsLowerEnd marks the side with the smaller bead
// count. Pos is the middle's own position. ExtentDist is how far the bounded
// walk from the middle edge's lower or upper endpoint got along central
// edges, capped at BeadingPropagationTransitionDist; the walk stops early
// only where the central region ends, not at branch points.
type End struct {
	Edge           skeleton.EdgeID
	Pos            float64
	LowerBeadCount int
	IsLowerEnd     bool
	ExtentDist     int64
}

// Config mirrors SkeletalTrapezoidationConfig's transition-related fields.
type Config struct {
	// TransitionFilterDist discards transitions whose middle-to-middle span
	// is shorter than this, merging them into their neighbor instead.
	TransitionFilterDist int64
	// BeadingPropagationTransitionDist bounds how far a transition's
	// influence is allowed to propagate along the graph before being
	// dissolved back to a uniform bead count.
	BeadingPropagationTransitionDist int64
}

// GenerateMiddles walks every central edge of g and emits a Middle wherever
// the strategy's optimal bead count changes between the edge's endpoints.
// Mirrors generateTransitionMids.
func GenerateMiddles(g *skeleton.Graph, strat beading.Strategy) []Middle {
	var out []Middle
	for i, e := range g.Edges {
		if !e.IsCentral {
			continue
		}
		aThick := int64(g.Nodes[e.From].DistToBoundary * 2)
		bThick := int64(g.Nodes[e.To].DistToBoundary * 2)
		aCount := strat.OptimalBeadCount(aThick)
		bCount := strat.OptimalBeadCount(bThick)
		if aCount == bCount {
			continue
		}

		lower := aCount
		if bCount < lower {
			lower = bCount
		}
		// Binary search along the edge for where OptimalBeadCount flips,
		// approximating the exact crossing the original computes
		// analytically from the strategy's transition_thickness table.
		pos := locateBoundary(strat, aThick, bThick, lower)
		out = append(out, Middle{Edge: skeleton.EdgeID(i), Pos: pos, LowerBeadCount: lower})
	}
	return out
}

// locateBoundary bisects [0,1] along an edge whose endpoints have thickness
// aThick/bThick to find where OptimalBeadCount crosses between lower and a
// higher count, whichever end of the edge is the thicker one.
func locateBoundary(strat beading.Strategy, aThick, bThick int64, lower int) float64 {
	lo, hi := 0.0, 1.0
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		thickness := aThick + int64(float64(bThick-aThick)*mid)
		// When thickness falls from a to b, the lower-count side is the b
		// end, so the bisection direction flips.
		if (strat.OptimalBeadCount(thickness) <= lower) == (aThick <= bThick) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// FilterMiddles dissolves pairs of middles that represent a short-lived
// bead-count bump: a transition up to k+1 immediately followed, within
// TransitionFilterDist of rising-distance graph travel, by a transition back
// down to k. Both middles of such a pair are dropped so the bead count stays
// at k straight through. Mirrors filterTransitionMids / dissolveNearbyTransitions.
func FilterMiddles(g *skeleton.Graph, middles []Middle, cfg Config) []Middle {
	if len(middles) == 0 {
		return middles
	}

	// Indexed under both the middle's own edge and its twin, since the
	// dissolve BFS below may approach the same physical edge from either
	// direction depending on which side of it the search started.
	byEdge := make(map[skeleton.EdgeID][]int, len(middles))
	for i, m := range middles {
		byEdge[m.Edge] = append(byEdge[m.Edge], i)
		if twin := g.Edges[m.Edge].Twin; twin != skeleton.NoEdge {
			byEdge[twin] = append(byEdge[twin], i)
		}
	}

	removed := make([]bool, len(middles))
	for i, m := range middles {
		if removed[i] {
			continue
		}
		e := g.Edges[m.Edge]
		start := e.To
		if g.Nodes[e.From].DistToBoundary > g.Nodes[e.To].DistToBoundary {
			start = e.From
		}
		if partner := findDissolvePartner(g, middles, byEdge, removed, i, start, cfg.TransitionFilterDist); partner != -1 {
			removed[i] = true
			removed[partner] = true
		}
	}

	kept := make([]Middle, 0, len(middles))
	for i, m := range middles {
		if !removed[i] {
			kept = append(kept, m)
		}
	}
	return kept
}

// findDissolvePartner performs a bounded breadth-first walk outward from
// start, along edges whose far endpoint's distance-to-boundary does not
// decrease (the "rising-distance" direction §4.5.2 calls for), cumulatively
// bounded by maxDist. It returns the index of the first not-yet-removed
// middle it finds at the same bead-count boundary as middles[selfIdx] — its
// opposite-direction dissolve partner — or -1 if none is reachable.
func findDissolvePartner(g *skeleton.Graph, middles []Middle, byEdge map[skeleton.EdgeID][]int, removed []bool, selfIdx int, start skeleton.NodeID, maxDist int64) int {
	type item struct {
		node skeleton.NodeID
		dist int64
	}
	visited := map[skeleton.NodeID]bool{start: true}
	queue := []item{{start, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, eid := range g.OutgoingEdges(cur.node) {
			e := g.Edges[eid]
			if !e.IsCentral {
				continue
			}
			for _, j := range byEdge[eid] {
				if j == selfIdx || removed[j] {
					continue
				}
				if middles[j].LowerBeadCount == middles[selfIdx].LowerBeadCount {
					return j
				}
			}

			if g.Nodes[e.To].DistToBoundary < g.Nodes[cur.node].DistToBoundary {
				continue
			}
			nd := cur.dist + int64(g.EdgeLength(eid))
			if nd > maxDist || visited[e.To] {
				continue
			}
			visited[e.To] = true
			queue = append(queue, item{e.To, nd})
		}
	}
	return -1
}

// GenerateEnds expands each middle into a pair of Ends bounded by a
// BFS-with-touched-list walk outward along the central graph, stopping once
// BeadingPropagationTransitionDist is reached or the central graph runs out;
// branch points neither stop nor split the walk. Mirrors
// generateTransitionEnds / generateTransition.
func GenerateEnds(g *skeleton.Graph, middles []Middle, cfg Config) []End {
	ws := newDissolveState(len(g.Nodes))
	var ends []End

	for _, m := range middles {
		e := g.Edges[m.Edge]
		lowerNode, upperNode := e.From, e.To
		if g.Nodes[e.From].DistToBoundary > g.Nodes[e.To].DistToBoundary {
			lowerNode, upperNode = e.To, e.From
		}

		lowerExtent := walkBounded(g, ws, lowerNode, cfg.BeadingPropagationTransitionDist)
		ends = append(ends, End{Edge: m.Edge, Pos: m.Pos, LowerBeadCount: m.LowerBeadCount, IsLowerEnd: true, ExtentDist: lowerExtent})

		upperExtent := walkBounded(g, ws, upperNode, cfg.BeadingPropagationTransitionDist)
		ends = append(ends, End{Edge: m.Edge, Pos: m.Pos, LowerBeadCount: m.LowerBeadCount, IsLowerEnd: false, ExtentDist: upperExtent})
	}

	return ends
}

// dissolveState is the touched-list-reset search state that one GenerateEnds
// call reuses across all of its walks, grounded on pkg/ch/witness.go's
// witnessState.
type dissolveState struct {
	dist    []int64
	touched []skeleton.NodeID
}

func newDissolveState(numNodes int) *dissolveState {
	dist := make([]int64, numNodes)
	for i := range dist {
		dist[i] = -1
	}
	return &dissolveState{dist: dist}
}

func (ws *dissolveState) reset() {
	for _, n := range ws.touched {
		ws.dist[n] = -1
	}
	ws.touched = ws.touched[:0]
}

// walkBounded performs a bounded breadth-first walk from start along central
// edges, returning the furthest graph distance reached, capped at maxDist.
// It is a simplified stand-in for the original's branch-aware
// transition-end search: it neither stops nor splits its travel at branch
// points of the skeleton, and no later stage adjusts for that.
func walkBounded(g *skeleton.Graph, ws *dissolveState, start skeleton.NodeID, maxDist int64) int64 {
	ws.reset()
	ws.dist[start] = 0
	ws.touched = append(ws.touched, start)

	queue := []skeleton.NodeID{start}
	furthest := int64(0)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := ws.dist[cur]
		if d > furthest {
			furthest = d
		}
		if d >= maxDist {
			continue
		}
		for _, eid := range g.OutgoingEdges(cur) {
			e := g.Edges[eid]
			if !e.IsCentral {
				continue
			}
			next := e.To
			nd := d + int64(g.EdgeLength(eid))
			if ws.dist[next] == -1 {
				ws.dist[next] = nd
				ws.touched = append(ws.touched, next)
				queue = append(queue, next)
			}
		}
	}
	if furthest > maxDist {
		furthest = maxDist
	}
	return furthest
}
