package junction

import (
	"testing"

	"wallgen/pkg/beading"
	"wallgen/pkg/geomtypes"
	"wallgen/pkg/propagate"
	"wallgen/pkg/skeleton"
)

func buildGraph() (*skeleton.Graph, []propagate.NodeBeading) {
	g := &skeleton.Graph{}
	a := g.AddNode(geomtypes.Point{0, 0}, 50, false)
	b := g.AddNode(geomtypes.Point{10000, 0}, 400, false)
	fwd := g.AddEdge(a, b)
	bwd := g.AddEdge(b, a)
	g.MakeTwins(fwd, bwd)
	g.Edges[fwd].IsCentral = true
	g.Edges[bwd].IsCentral = true

	strat := beading.Distributed{Params: beading.Params{PreferredWidth: 400, MinWidth: 100, MaxWidth: 1000}}
	bd := strat.Compute(1000, 2)
	beadings := make([]propagate.NodeBeading, len(g.Nodes))
	beadings[a] = propagate.NodeBeading{Beading: bd}
	beadings[b] = propagate.NodeBeading{Beading: bd}
	return g, beadings
}

func TestGenerateJunctionsProcessesEachEdgeOnce(t *testing.T) {
	g, beadings := buildGraph()
	perEdge := GenerateJunctions(g, beadings)
	// The one physical edge is reachable under both of its directed
	// half-edge IDs, but its junction list is computed once, not twice.
	if len(perEdge) != 2 {
		t.Fatalf("expected the edge's junctions reachable under both directions, got %d entries", len(perEdge))
	}
	fwdJunctions := perEdge[skeleton.EdgeID(0)]
	bwdJunctions := perEdge[skeleton.EdgeID(1)]
	if len(fwdJunctions) == 0 {
		t.Fatal("expected junctions on the forward edge")
	}
	if &fwdJunctions[0] != &bwdJunctions[0] {
		// Same backing array: proof the edge was walked exactly once, with
		// both directions sharing the one computed result.
		t.Error("expected both directions to share the same computed junction slice")
	}
}

// faceGraph builds one rib-delimited trapezoid face: a central "high" rail
// (topL->topR), a rib out to a boundary-ish node, a central "low" rail
// (bFoot->bot), and a closing rib, wired into a single Next face cycle so
// enumerateFaces/BuildFaceSegments can pair the two rails' junctions.
func faceGraph() *skeleton.Graph {
	g := &skeleton.Graph{}
	topL := g.AddNode(geomtypes.Point{0, 1000}, 500, false)
	topR := g.AddNode(geomtypes.Point{1000, 1000}, 100, false)
	bFoot := g.AddNode(geomtypes.Point{1000, 0}, 50, true)
	bot := g.AddNode(geomtypes.Point{0, 0}, 450, false)

	high := g.AddEdge(topL, topR)
	highRev := g.AddEdge(topR, topL)
	g.MakeTwins(high, highRev)
	g.Edges[high].IsCentral = true
	g.Edges[highRev].IsCentral = true

	low := g.AddEdge(bFoot, bot)
	lowRev := g.AddEdge(bot, bFoot)
	g.MakeTwins(low, lowRev)
	g.Edges[low].IsCentral = true
	g.Edges[lowRev].IsCentral = true

	rib1 := g.AddEdge(topR, bFoot)
	g.Edges[rib1].IsExtraRib = true
	rib2 := g.AddEdge(bot, topL)
	g.Edges[rib2].IsExtraRib = true

	g.Edges[high].Next = rib1
	g.Edges[rib1].Next = low
	g.Edges[low].Next = rib2
	g.Edges[rib2].Next = high

	return g
}

func faceBeadings(g *skeleton.Graph) []propagate.NodeBeading {
	strat := beading.Distributed{Params: beading.Params{PreferredWidth: 400, MinWidth: 100, MaxWidth: 1000}}
	bd := strat.Compute(1000, 2) // beads [500,500] -> BeadOffset(0)=125, BeadOffset(1)=375
	beadings := make([]propagate.NodeBeading, len(g.Nodes))
	for i := range beadings {
		beadings[i] = propagate.NodeBeading{Beading: bd}
	}
	return beadings
}

func TestBuildFaceSegmentsPairsHighAndLowRails(t *testing.T) {
	g := faceGraph()
	beadings := faceBeadings(g)
	perEdge := GenerateJunctions(g, beadings)
	perInset := BuildFaceSegments(g, perEdge)

	if len(perInset) != 2 {
		t.Fatalf("expected segments for both bead indices, got %d groups", len(perInset))
	}
	for idx, segs := range perInset {
		if len(segs) != 1 {
			t.Errorf("inset %d: expected exactly 1 face segment, got %d", idx, len(segs))
		}
	}
}

func TestStitchChainsFaceSegments(t *testing.T) {
	g := faceGraph()
	beadings := faceBeadings(g)
	perEdge := GenerateJunctions(g, beadings)
	perInset := BuildFaceSegments(g, perEdge)

	lines := Stitch(perInset, Config{SnapDist: 20})
	if len(lines) == 0 {
		t.Fatal("expected at least one stitched line")
	}
	for _, l := range lines {
		if l.Empty() {
			t.Errorf("stitched line for inset %d has fewer than 2 junctions", l.InsetIdx)
		}
	}
}

func TestOptimizeOrderInnerFirst(t *testing.T) {
	lines := []ExtrusionLine{{InsetIdx: 0}, {InsetIdx: 1}, {InsetIdx: 2}}
	ordered := OptimizeOrder(lines, true)
	if ordered[0].InsetIdx != 2 {
		t.Errorf("expected innermost (highest index) first, got %d", ordered[0].InsetIdx)
	}
}
