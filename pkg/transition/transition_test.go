package transition

import (
	"testing"

	"wallgen/pkg/beading"
	"wallgen/pkg/geomtypes"
	"wallgen/pkg/skeleton"
)

func buildGraph() *skeleton.Graph {
	g := &skeleton.Graph{}
	a := g.AddNode(geomtypes.Point{0, 0}, 200, false)
	b := g.AddNode(geomtypes.Point{10000, 0}, 900, false)
	fwd := g.AddEdge(a, b)
	bwd := g.AddEdge(b, a)
	g.MakeTwins(fwd, bwd)
	g.Edges[fwd].IsCentral = true
	g.Edges[bwd].IsCentral = true
	return g
}

func TestGenerateMiddlesFindsBeadCountChange(t *testing.T) {
	g := buildGraph()
	strat := beading.Distributed{Params: beading.Params{PreferredWidth: 400}}
	middles := GenerateMiddles(g, strat)
	if len(middles) == 0 {
		t.Fatal("expected a transition middle between thickness 400 and 1800")
	}
	for _, m := range middles {
		if m.Pos < 0 || m.Pos > 1 {
			t.Errorf("Pos %f out of [0,1] range", m.Pos)
		}
	}
}

// bumpGraph builds a short A-B-C path where B is a local bead-count bump:
// A and C sit at the same (low) distance-to-boundary, B at a higher one, so
// a transition up crossing A->B is immediately undone crossing B->C.
func bumpGraph() (*skeleton.Graph, skeleton.EdgeID, skeleton.EdgeID) {
	g := &skeleton.Graph{}
	a := g.AddNode(geomtypes.Point{0, 0}, 200, false)
	b := g.AddNode(geomtypes.Point{500, 0}, 900, false)
	c := g.AddNode(geomtypes.Point{1000, 0}, 200, false)

	abf := g.AddEdge(a, b)
	abb := g.AddEdge(b, a)
	g.MakeTwins(abf, abb)
	g.Edges[abf].IsCentral = true
	g.Edges[abb].IsCentral = true

	bcf := g.AddEdge(b, c)
	bcb := g.AddEdge(c, b)
	g.MakeTwins(bcf, bcb)
	g.Edges[bcf].IsCentral = true
	g.Edges[bcb].IsCentral = true

	// Wire B's outgoing rotation (abb, bcf) so OutgoingEdges(B) walks both.
	g.Edges[abf].Next = bcf

	return g, abf, bcf
}

func TestFilterMiddlesDissolvesOppositeDirectionBump(t *testing.T) {
	g, abf, bcf := bumpGraph()
	middles := []Middle{
		{Edge: abf, Pos: 0.5, LowerBeadCount: 1},
		{Edge: bcf, Pos: 0.5, LowerBeadCount: 1},
	}
	kept := FilterMiddles(g, middles, Config{TransitionFilterDist: 1000})
	if len(kept) != 0 {
		t.Errorf("expected both bump middles to dissolve, got %d kept", len(kept))
	}
}

func TestFilterMiddlesKeepsIsolatedMiddle(t *testing.T) {
	g := &skeleton.Graph{}
	a := g.AddNode(geomtypes.Point{0, 0}, 200, false)
	b := g.AddNode(geomtypes.Point{10000, 0}, 900, false)
	e := g.AddEdge(a, b)
	eb := g.AddEdge(b, a)
	g.MakeTwins(e, eb)
	g.Edges[e].IsCentral = true
	g.Edges[eb].IsCentral = true

	middles := []Middle{{Edge: e, Pos: 0.5, LowerBeadCount: 1}}
	kept := FilterMiddles(g, middles, Config{TransitionFilterDist: 1000})
	if len(kept) != 1 {
		t.Errorf("expected the lone middle to survive with no dissolve partner, got %d", len(kept))
	}
}

func TestGenerateEndsProducesPairs(t *testing.T) {
	g := buildGraph()
	strat := beading.Distributed{Params: beading.Params{PreferredWidth: 400}}
	middles := GenerateMiddles(g, strat)
	ends := GenerateEnds(g, middles, Config{BeadingPropagationTransitionDist: 400})
	if len(ends) != len(middles)*2 {
		t.Errorf("expected 2 ends per middle, got %d ends for %d middles", len(ends), len(middles))
	}
}
