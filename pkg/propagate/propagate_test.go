package propagate

import (
	"testing"

	"wallgen/pkg/beading"
	"wallgen/pkg/geomtypes"
	"wallgen/pkg/skeleton"
)

func buildChain(t *testing.T, n int) *skeleton.Graph {
	t.Helper()
	g := &skeleton.Graph{}
	ids := make([]skeleton.NodeID, n)
	for i := 0; i < n; i++ {
		ids[i] = g.AddNode(geomtypes.Point{int64(i) * 1000, 0}, 500, false)
	}
	for i := 0; i < n-1; i++ {
		fwd := g.AddEdge(ids[i], ids[i+1])
		bwd := g.AddEdge(ids[i+1], ids[i])
		g.MakeTwins(fwd, bwd)
		g.Edges[fwd].IsCentral = true
		g.Edges[bwd].IsCentral = true
	}
	return g
}

func TestPropagateAssignsEveryNode(t *testing.T) {
	g := buildChain(t, 5)
	strat := beading.Distributed{Params: beading.Params{PreferredWidth: 400, MinWidth: 100, MaxWidth: 1000}}
	seeds := map[skeleton.NodeID]beading.Beading{
		0: strat.Compute(1000, 2),
	}
	results := Propagate(g, strat, seeds)
	if len(results) != len(g.Nodes) {
		t.Fatalf("expected %d results, got %d", len(g.Nodes), len(results))
	}
	for i, r := range results {
		if r.Beading.BeadCount() == 0 {
			t.Errorf("node %d has no beads assigned", i)
		}
	}
}

func TestPropagateSeedWins(t *testing.T) {
	g := buildChain(t, 3)
	strat := beading.Distributed{Params: beading.Params{PreferredWidth: 400, MinWidth: 100, MaxWidth: 1000}}
	seedBeading := strat.Compute(1200, 3)
	seeds := map[skeleton.NodeID]beading.Beading{0: seedBeading}

	results := Propagate(g, strat, seeds)
	if results[0].Beading.BeadCount() != seedBeading.BeadCount() {
		t.Errorf("seed node beading should be preserved exactly")
	}
}
