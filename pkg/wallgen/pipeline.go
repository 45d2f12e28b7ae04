package wallgen

import (
	"context"

	"wallgen/pkg/beading"
	"wallgen/pkg/junction"
	"wallgen/pkg/propagate"
	"wallgen/pkg/simplify"
	"wallgen/pkg/skeleton"
	"wallgen/pkg/transition"
)

// finishPipeline runs transition planning, beading propagation, junction
// stitching, and simplification over an already marked graph g.
func finishPipeline(ctx context.Context, g *skeleton.Graph, cfg Config, strategy beading.Strategy, stats StatsSink) (*Result, error) {
	strategy = wrapStrategy(strategy, cfg)

	transitionCfg := transition.Config{
		TransitionFilterDist:             cfg.TransitionFilterDist,
		BeadingPropagationTransitionDist: cfg.BeadingPropagationTransitionDist,
	}
	middles := transition.GenerateMiddles(g, strategy)
	middles = transition.FilterMiddles(g, middles, transitionCfg)
	ends := transition.GenerateEnds(g, middles, transitionCfg)
	stats.OnTransitionsPlanned(len(middles), len(ends))

	if err := checkCanceled(ctx, "transition planning"); err != nil {
		return nil, err
	}

	seeds := seedBeadings(g, strategy)
	beadings := propagate.Propagate(g, strategy, seeds)
	stats.OnBeadingPropagated(len(beadings))

	if err := checkCanceled(ctx, "beading propagation"); err != nil {
		return nil, err
	}

	perEdge := junction.GenerateJunctions(g, beadings)
	perInset := junction.BuildFaceSegments(g, perEdge)
	lines := junction.Stitch(perInset, junction.Config{SnapDist: cfg.SnapDist})
	lines = junction.OptimizeOrder(lines, false) // outer wall (inset 0) first
	stats.OnJunctionsStitched(len(lines))

	if err := checkCanceled(ctx, "junction stitching"); err != nil {
		return nil, err
	}

	simplifyCfg := simplify.Config{
		MaxResolution:    cfg.Simplify.MaxResolution,
		MaxDeviation:     cfg.Simplify.MaxDeviation,
		MaxAreaDeviation: cfg.Simplify.MaxAreaDeviation,
	}
	for i := range lines {
		if lines[i].Empty() {
			continue
		}
		lines[i] = simplify.Polyline(lines[i], simplifyCfg)
	}

	return &Result{Lines: lines}, nil
}

// wrapStrategy composes the decorator chain every GenerateWalls call
// applies on top of the caller-supplied base strategy: width limiting, then
// bead-count clamping, then convexity-biased redistribution, matching how
// pkg/ch.Contract layers independent passes (priority, shortcut search,
// overlay build) around its core algorithm rather than hand-inlining them.
func wrapStrategy(base beading.Strategy, cfg Config) beading.Strategy {
	limited := beading.WidthLimited{Inner: base, MaxWidth: cfg.MaxBeadWidth}
	clamped := beading.BeadCountClamp{Inner: limited, MaxBeads: cfg.MaxBeads}
	return beading.Redistribute{Inner: clamped}
}

// seedBeadings computes a locally authoritative Beading for every node
// touched by at least one central edge (§4.6.1, invariant G6: every central
// node gets its own locally-computed Beading, not a value inherited wholesale
// from a distant leaf). Propagate's sweep then only has to interpolate
// FromTransitionDist bookkeeping and hand non-central, unreachable nodes a
// fallback — every central node's bead count is already locally correct
// before the sweep starts. Mirrors the original's pattern of computing a
// node's own optimal beading at every distance sample, rather than
// propagating only from a sparse set of anchors.
func seedBeadings(g *skeleton.Graph, strategy beading.Strategy) map[skeleton.NodeID]beading.Beading {
	touched := make([]bool, len(g.Nodes))
	for _, e := range g.Edges {
		if !e.IsCentral {
			continue
		}
		touched[e.From] = true
		touched[e.To] = true
	}

	seeds := make(map[skeleton.NodeID]beading.Beading, len(g.Nodes))
	for i, n := range g.Nodes {
		if !touched[i] {
			continue
		}
		thickness := int64(n.DistToBoundary * 2)
		count := strategy.OptimalBeadCount(thickness)
		seeds[skeleton.NodeID(i)] = strategy.Compute(thickness, count)
	}
	return seeds
}
