// Package propagate performs beading propagation: sweeping a Beading
// assignment up and down the trapezoidation graph's edges (sorted by
// distance-to-boundary) so that every node ends up with a beading. Where
// both sweeps reach a node one beading is kept (widths are averaged only on
// an exact distance tie between equal bead counts); beadings of different
// bead counts are never blended across a transition stretch.
//
// Grounded on pkg/routing's QueryState: the same "distance array + touched
// list for O(touched) reset" pattern used for bidirectional CH Dijkstra,
// here driving an upward/downward sweep instead of a shortest-path search.
package propagate

import (
	"sort"

	"wallgen/pkg/beading"
	"wallgen/pkg/skeleton"
)

// NodeBeading is the beading assigned to one graph node.
type NodeBeading struct {
	Beading beading.Beading
	// FromTransitionDist records how far (in edge-length) this node's
	// beading was propagated from the seed node it was copied from (0 for a
	// seed itself), used to choose between an upward and downward sweep
	// where they meet.
	FromTransitionDist int64
}

// state is the reusable touched-list sweep state, mirroring
// pkg/routing.QueryState but keyed by skeleton.NodeID and carrying a
// NodeBeading instead of a plain distance.
type state struct {
	assigned []bool
	result   []NodeBeading
	touched  []skeleton.NodeID
}

func newState(numNodes int) *state {
	return &state{
		assigned: make([]bool, numNodes),
		result:   make([]NodeBeading, numNodes),
	}
}

func (s *state) reset() {
	for _, n := range s.touched {
		s.assigned[n] = false
	}
	s.touched = s.touched[:0]
}

func (s *state) set(n skeleton.NodeID, nb NodeBeading) {
	if !s.assigned[n] {
		s.touched = append(s.touched, n)
	}
	s.assigned[n] = true
	s.result[n] = nb
}

// Propagate sweeps beadings outward from every seed node (nodes whose
// beading the caller has already fixed), in increasing order of distance to
// boundary (upward sweep) and then in decreasing order (downward sweep),
// merging wherever both sweeps reach the same node. Mirrors
// propagateBeadingsUpward / propagateBeadingsDownward / interpolate.
func Propagate(g *skeleton.Graph, strat beading.Strategy, seeds map[skeleton.NodeID]beading.Beading) []NodeBeading {
	up := newState(len(g.Nodes))
	down := newState(len(g.Nodes))

	order := sortedByDistance(g, true)
	sweep(g, up, seeds, order, strat)

	orderDesc := sortedByDistance(g, false)
	sweep(g, down, seeds, orderDesc, strat)

	return mergeSweeps(g, up, down)
}

func sortedByDistance(g *skeleton.Graph, ascending bool) []skeleton.NodeID {
	order := make([]skeleton.NodeID, len(g.Nodes))
	for i := range order {
		order[i] = skeleton.NodeID(i)
	}
	sort.Slice(order, func(i, j int) bool {
		a := g.Nodes[order[i]].DistToBoundary
		b := g.Nodes[order[j]].DistToBoundary
		if ascending {
			return a < b
		}
		return a > b
	})
	return order
}

// sweep propagates beadings from seeds along central edges in the given
// node visit order, carrying each node's assigned beading to its
// not-yet-assigned central neighbors.
func sweep(g *skeleton.Graph, st *state, seeds map[skeleton.NodeID]beading.Beading, order []skeleton.NodeID, strat beading.Strategy) {
	for n, b := range seeds {
		st.set(n, NodeBeading{Beading: b})
	}

	for _, n := range order {
		if !st.assigned[n] {
			continue
		}
		cur := st.result[n]
		for _, eid := range g.OutgoingEdges(n) {
			e := g.Edges[eid]
			if !e.IsCentral {
				continue
			}
			next := e.To
			if st.assigned[next] {
				continue
			}
			dist := cur.FromTransitionDist + int64(g.EdgeLength(eid))
			st.set(next, NodeBeading{Beading: cur.Beading, FromTransitionDist: dist})
		}
	}

	// Any node neither sweep ever reached (disconnected from a seed) still
	// gets a sane beading via the strategy's own optimal count, rather than
	// being left as a zero-value Beading.
	for i := range g.Nodes {
		n := skeleton.NodeID(i)
		if st.assigned[n] {
			continue
		}
		thickness := int64(g.Nodes[n].DistToBoundary * 2)
		count := strat.OptimalBeadCount(thickness)
		st.set(n, NodeBeading{Beading: strat.Compute(thickness, count)})
	}
}

// mergeSweeps combines the upward and downward sweep results per node,
// preferring whichever sweep propagated the shorter distance (closer to its
// seed, hence more locally accurate), and linearly interpolating bead
// widths when both are equally distant with the same bead count; an equal
// distance with different bead counts keeps the upward result. Mirrors
// getBeading / getNearestBeading / interpolate.
func mergeSweeps(g *skeleton.Graph, up, down *state) []NodeBeading {
	out := make([]NodeBeading, len(g.Nodes))
	for i := range g.Nodes {
		n := skeleton.NodeID(i)
		u, d := up.result[n], down.result[n]
		switch {
		case !up.assigned[n]:
			out[i] = d
		case !down.assigned[n]:
			out[i] = u
		case u.FromTransitionDist == d.FromTransitionDist && u.Beading.BeadCount() == d.Beading.BeadCount():
			merged := u
			merged.Beading.Beads = make([]beading.Bead, len(u.Beading.Beads))
			for k := range merged.Beading.Beads {
				merged.Beading.Beads[k].Width = (u.Beading.Beads[k].Width + d.Beading.Beads[k].Width) / 2
			}
			out[i] = merged
		case u.FromTransitionDist <= d.FromTransitionDist:
			out[i] = u
		default:
			out[i] = d
		}
	}
	return out
}
