package skeleton

import (
	"math"

	"wallgen/pkg/geomtypes"
	"wallgen/pkg/voronoi"
)

// ImportConfig mirrors the subset of SkeletalTrapezoidationConfig that
// governs graph construction from the raw Voronoi diagram.
type ImportConfig struct {
	DiscretizationStepSize int64
	TransitioningAngle     float64
	// MinEdgeLength collapses any post-discretization edge shorter than this
	// into a single node (small-edge collapse, §4.2.3).
	MinEdgeLength int64
}

// siteDistance returns the distance from p to a Voronoi site (point or
// segment), used to assign each skeleton node its distance-to-boundary.
func siteDistance(p geomtypes.Point, s voronoi.Site) float64 {
	if s.Kind == voronoi.SourcePoint {
		return p.DistanceF(s.Point)
	}
	d, _ := geomtypes.PointToSegmentDistance(p, s.Segment.A, s.Segment.B)
	return d
}

// FromDiagram builds a trapezoidation half-edge graph from a Voronoi
// diagram: discretizing parabolic edges into straight chords, inserting a
// perpendicular rib from every imported node down to the source outline
// segment its cell was grown from (§4.2.2), collapsing edges shorter than
// MinEdgeLength, and duplicating pointy-quad endpoints shared by more than
// one incident cell (§4.2.4).
//
// Grounded on SkeletalTrapezoidation::transferEdge's discretize-then-chain
// pattern from original_source, reworked onto the index-based arena in
// types.go instead of pointer node/edge emplacement; rib insertion mirrors
// transferEdge's makeRib calls, triggered off the same Cell.Site each
// chord's distance was already computed against rather than a fresh
// nearest-segment search over the whole polygon.
func FromDiagram(d *voronoi.Diagram, cfg ImportConfig) *Graph {
	g := &Graph{}

	nodeOf := make(map[voronoi.VertexID]NodeID, len(d.Vertices))
	nodeFor := func(vid voronoi.VertexID) NodeID {
		if nid, ok := nodeOf[vid]; ok {
			return nid
		}
		v := d.Vertices[vid]
		dist := 0.0
		if v.Edge != voronoi.NoEdge {
			dist = siteDistance(v.Pos, d.Cells[d.Edges[v.Edge].Cell].Site)
		}
		nid := g.AddNode(v.Pos, dist, false)
		nodeOf[vid] = nid
		return nid
	}

	// ribbed tracks which interior nodes already own a rib, so a vertex
	// shared by several cells (a pointy quad, §4.2.4) gets a private
	// duplicate instead of having its one rib silently reused.
	ribbed := make(map[NodeID]bool)

	// Only import one half-edge of each twin pair; the twin is synthesized
	// alongside it so From/To stay consistent.
	seen := make(map[voronoi.EdgeID]bool, len(d.Edges))

	for i := range d.Edges {
		eid := voronoi.EdgeID(i)
		if seen[eid] {
			continue
		}
		e := d.Edges[eid]
		if e.Twin != voronoi.NoEdge {
			seen[e.Twin] = true
		}
		seen[eid] = true

		if e.Start == voronoi.NoVertex || e.End == voronoi.NoVertex {
			continue
		}

		fromNode := nodeFor(e.Start)
		toNode := nodeFor(e.End)

		chain := []geomtypes.Point{d.Vertices[e.Start].Pos, d.Vertices[e.End].Pos}
		if e.Curve.IsParabola {
			chain = voronoi.DiscretizeParabola(
				e.Curve.Point, e.Curve.Segment,
				chain[0], chain[1],
				cfg.DiscretizationStepSize, cfg.TransitioningAngle,
			)
		}

		chainIntoGraph(g, d, e, fromNode, toNode, chain, ribbed)
	}

	collapseSmallEdges(g, cfg.MinEdgeLength)
	linkGraphFaces(g)
	return g
}

// chainIntoGraph materializes a discretized point chain as a run of graph
// nodes/edges between existing endpoints fromNode/toNode, creating the twin
// edge alongside each forward edge, attaching the witnessed source-feature
// angle to each (§4.3), and inserting a rib after every edge's terminal
// node (§4.2.2).
func chainIntoGraph(g *Graph, d *voronoi.Diagram, e voronoi.Edge, fromNode, toNode NodeID, chain []geomtypes.Point, ribbed map[NodeID]bool) {
	site := d.Cells[e.Cell].Site
	var twinSite voronoi.Site
	hasTwinSite := e.Twin != voronoi.NoEdge
	if hasTwinSite {
		twinSite = d.Cells[d.Edges[e.Twin].Cell].Site
	}
	seg, hasSeg := outlineSegmentFor(site, twinSite, hasTwinSite)

	prev := fromNode
	for i := 1; i < len(chain)-1; i++ {
		dist := siteDistance(chain[i], site)
		if hasTwinSite {
			if twinDist := siteDistance(chain[i], twinSite); twinDist < dist {
				dist = twinDist
			}
		}
		mid := g.AddNode(chain[i], dist, false)
		fwd := g.AddEdge(prev, mid)
		bwd := g.AddEdge(mid, prev)
		g.MakeTwins(fwd, bwd)
		setWitnessAngle(g, fwd, bwd, chain[i-1], chain[i], site, twinSite, hasTwinSite)
		insertRib(g, fwd, bwd, seg, hasSeg, ribbed)
		prev = mid
	}

	fwd := g.AddEdge(prev, toNode)
	bwd := g.AddEdge(toNode, prev)
	g.MakeTwins(fwd, bwd)
	setWitnessAngle(g, fwd, bwd, chain[len(chain)-2], chain[len(chain)-1], site, twinSite, hasTwinSite)
	insertRib(g, fwd, bwd, seg, hasSeg, ribbed)
}

// outlineSegmentFor picks which of the two cells bordering an edge is the
// source-outline segment a rib should drop a perpendicular onto. Point-point
// edges (both sides are polygon corners, typically at a reflex vertex with
// no intervening segment cell) report hasSeg=false; no ring-wide nearest-
// segment fallback is attempted for that rarer case (see DESIGN.md).
func outlineSegmentFor(site, twinSite voronoi.Site, hasTwinSite bool) (geomtypes.Segment, bool) {
	if site.Kind == voronoi.SourceSegment {
		return site.Segment, true
	}
	if hasTwinSite && twinSite.Kind == voronoi.SourceSegment {
		return twinSite.Segment, true
	}
	return geomtypes.Segment{}, false
}

// insertRib drops a perpendicular from fwd's terminal node n to seg,
// creating a new boundary node at the foot of the perpendicular with
// distance_to_boundary = 0 and a twin edge pair marked IsExtraRib (§4.2.2).
// If n already owns a rib (it is the shared vertex of more than one
// incident cell), n is instead duplicated for this cell alone — §4.2.4's
// pointy-quad separation — so OutgoingEdges iteration from the duplicate
// stays within this cell's own face.
func insertRib(g *Graph, fwd, bwd EdgeID, seg geomtypes.Segment, hasSeg bool, ribbed map[NodeID]bool) {
	if !hasSeg {
		return
	}
	n := g.Edges[fwd].To
	if g.Nodes[n].IsBoundary {
		return
	}
	if ribbed[n] {
		dup := g.AddNode(g.Nodes[n].Pos, g.Nodes[n].DistToBoundary, false)
		g.Edges[fwd].To = dup
		g.Edges[bwd].From = dup
		g.Nodes[dup].SomeEdge = bwd
		n = dup
	}
	ribbed[n] = true

	_, t := geomtypes.PointToSegmentDistance(g.Nodes[n].Pos, seg.A, seg.B)
	foot := geomtypes.Lerp(seg.A, seg.B, t)
	m := g.AddNode(foot, 0, true)

	rf := g.AddEdge(n, m)
	rb := g.AddEdge(m, n)
	g.MakeTwins(rf, rb)
	g.Edges[rf].IsExtraRib = true
	g.Edges[rb].IsExtraRib = true
}

// setWitnessAngle records, on both directions of one discretized chord, the
// opening angle between the two source features the chord's midpoint sits
// between. A segment-segment edge (no corner on either side) leaves
// HasWitnessAngle false; UpdateMarking treats that as unconditionally
// central.
func setWitnessAngle(g *Graph, fwd, bwd EdgeID, from, to geomtypes.Point, site, twinSite voronoi.Site, hasTwinSite bool) {
	if !hasTwinSite {
		return
	}
	mid := geomtypes.Lerp(from, to, 0.5)
	angle, defined := witnessAngle(mid, site, twinSite)
	if !defined {
		return
	}
	g.Edges[fwd].WitnessAngle = angle
	g.Edges[fwd].HasWitnessAngle = true
	g.Edges[bwd].WitnessAngle = angle
	g.Edges[bwd].HasWitnessAngle = true
}

// witnessAngle computes the opening angle of the source-feature pair an
// edge's midpoint separates: the angle, at mid, between the two rays to
// the witnessing corner(s). Point-segment pairs (the parabolic case) use
// the same marking-bound geometry DiscretizeParabola's breakpoints are
// derived from; point-point pairs use the analogous construction across the
// perpendicular bisector of the two corners. Segment-segment pairs have no
// corner to measure and report !defined.
func witnessAngle(mid geomtypes.Point, site, twinSite voronoi.Site) (angle float64, defined bool) {
	switch {
	case site.Kind == voronoi.SourceSegment && twinSite.Kind == voronoi.SourceSegment:
		return 0, false
	case site.Kind == voronoi.SourcePoint && twinSite.Kind == voronoi.SourcePoint:
		return pointPointWitnessAngle(mid, site.Point, twinSite.Point), true
	case site.Kind == voronoi.SourcePoint:
		return pointSegmentWitnessAngle(mid, site.Point, twinSite.Segment), true
	default:
		return pointSegmentWitnessAngle(mid, twinSite.Point, site.Segment), true
	}
}

// pointSegmentWitnessAngle returns the angle, at source point p's corner,
// subtended between p and the foot of mid's projection onto seg — the same
// (x, d) pair DiscretizeParabola's local parabola frame computes, so
// 2*atan(|x|/d) gives the angle the marking-bound breakpoints were chosen
// relative to.
func pointSegmentWitnessAngle(mid, p geomtypes.Point, seg geomtypes.Segment) float64 {
	d, t := geomtypes.PointToSegmentDistance(p, seg.A, seg.B)
	if d <= 0 {
		return math.Pi / 2
	}
	foot := geomtypes.Lerp(seg.A, seg.B, t)
	ab := seg.B.Sub(seg.A)
	abLen := ab.LengthF()
	if abLen == 0 {
		return math.Pi / 2
	}
	x := float64(mid.Sub(foot).Dot(ab)) / abLen
	return 2 * math.Atan(math.Abs(x)/d)
}

// pointPointWitnessAngle is the point-point analogue of
// pointSegmentWitnessAngle: it measures mid's offset along the perpendicular
// bisector of a and b against half their separation, the point-point
// equivalent of the (x, d) pair the point-segment case uses.
func pointPointWitnessAngle(mid, a, b geomtypes.Point) float64 {
	center := geomtypes.Lerp(a, b, 0.5)
	halfDist := a.DistanceF(b) / 2
	if halfDist <= 0 {
		return math.Pi / 2
	}
	ab := b.Sub(a)
	bisector := geomtypes.Point{X: -ab.Y, Y: ab.X}
	bisectorLen := bisector.LengthF()
	if bisectorLen == 0 {
		return math.Pi / 2
	}
	x := float64(mid.Sub(center).Dot(bisector)) / bisectorLen
	return 2 * math.Atan(math.Abs(x)/halfDist)
}

// collapseSmallEdges merges the endpoints of any edge shorter than minLen by
// redirecting all half-edges touching the edge's To endpoint onto its From
// endpoint, mirroring the original's small-edge collapse pass that prevents
// degenerate micro-edges from destabilizing bead-count transitions. Ribs are left
// alone: collapsing one would erase the only distance=0 node a quad has,
// breaking G4 for no benefit (sliver ribs are harmless).
func collapseSmallEdges(g *Graph, minLen int64) {
	if minLen <= 0 {
		return
	}
	redirect := make([]NodeID, len(g.Nodes))
	for i := range redirect {
		redirect[i] = NodeID(i)
	}
	find := func(n NodeID) NodeID {
		for redirect[n] != n {
			redirect[n] = redirect[redirect[n]]
			n = redirect[n]
		}
		return n
	}

	for i := range g.Edges {
		e := g.Edges[i]
		if e.From == e.To || e.IsExtraRib {
			continue
		}
		if g.EdgeLength(EdgeID(i)) < float64(minLen) {
			a, b := find(e.From), find(e.To)
			if a != b {
				redirect[b] = a
			}
		}
	}

	for i := range g.Edges {
		g.Edges[i].From = find(g.Edges[i].From)
		g.Edges[i].To = find(g.Edges[i].To)
	}
	for i := range g.Nodes {
		root := find(NodeID(i))
		if root != NodeID(i) && g.Nodes[root].SomeEdge == NoEdge {
			g.Nodes[root].SomeEdge = g.Nodes[i].SomeEdge
		}
	}
}

// linkGraphFaces fills in Next/Prev around each node by angular sort of its
// outgoing half-edges, so face traversal (OutgoingEdges / twin-next
// rotation) is well defined after collapseSmallEdges may have changed
// adjacency.
func linkGraphFaces(g *Graph) {
	byNode := make(map[NodeID][]EdgeID, len(g.Nodes))
	for i, e := range g.Edges {
		byNode[e.From] = append(byNode[e.From], EdgeID(i))
	}

	for n, edges := range byNode {
		if len(edges) == 0 {
			continue
		}
		g.Nodes[n].SomeEdge = edges[0]
		angleOf := func(e EdgeID) float64 {
			ed := g.Edges[e]
			v := g.Nodes[ed.To].Pos.Sub(g.Nodes[ed.From].Pos)
			x, y := v.Normalized()
			return math.Atan2(y, x)
		}
		sortByAngle(edges, angleOf)
		for i, e := range edges {
			next := edges[(i+1)%len(edges)]
			twin := g.Edges[e].Twin
			if twin != NoEdge {
				g.Edges[twin].Next = next
				g.Edges[next].Prev = twin
			}
		}
	}
}

func sortByAngle(edges []EdgeID, angleOf func(EdgeID) float64) {
	for i := 1; i < len(edges); i++ {
		j := i
		for j > 0 && angleOf(edges[j-1]) > angleOf(edges[j]) {
			edges[j-1], edges[j] = edges[j], edges[j-1]
			j--
		}
	}
}
