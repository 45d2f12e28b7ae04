// Package wallgen is the public entry point for variable-width wall
// generation: it wires together pkg/voronoi, pkg/skeleton, pkg/beading,
// pkg/transition, pkg/propagate, pkg/junction, and pkg/simplify into the
// single GenerateWalls call a slicer invokes once per sliced region.
//
// Grounded on pkg/routing/engine.go's Route method (orchestration shape,
// context-cancellation checks) and pkg/api/server.go's panic-recovery
// middleware (adapted so a GraphInconsistency panic anywhere in the
// pipeline below is recovered here instead of crashing the caller).
package wallgen

import (
	"context"
	"fmt"

	"wallgen/pkg/beading"
	"wallgen/pkg/geomtypes"
	"wallgen/pkg/junction"
	"wallgen/pkg/propagate"
	"wallgen/pkg/simplify"
	"wallgen/pkg/skeleton"
	"wallgen/pkg/voronoi"
)

// Result is the full set of toolpaths generated for a region.
type Result struct {
	Lines []junction.ExtrusionLine
}

// GenerateWalls builds variable-width wall toolpaths for region, using
// strategy to decide bead counts and widths. It returns a *WallError on any
// failure, including internal invariant violations recovered from a panic.
func GenerateWalls(ctx context.Context, region geomtypes.Region, cfg Config, strategy beading.Strategy, stats StatsSink) (result *Result, err error) {
	if stats == nil {
		stats = NoopStats{}
	}
	if len(region.Outer) < 3 {
		return nil, newError(InvalidInput, "outer boundary must have at least 3 points")
	}

	defer func() {
		if r := recover(); r != nil {
			if gp, ok := r.(graphPanic); ok {
				err = newError(GraphInconsistency, gp.msg)
				result = nil
				return
			}
			panic(r) // not ours: a real bug, let it crash
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, newError(InvalidInput, "context already canceled")
	}

	diagram := voronoi.Build(region.AllRings(), voronoi.BuildConfig{
		DiscretizationStepSize: cfg.DiscretizationStepSize,
		SnapDist:               cfg.SnapDist,
		BoundsMargin:           boundsMarginFor(region),
	})
	if len(diagram.Vertices) == 0 {
		return nil, newError(DegenerateVoronoi, "Voronoi construction produced no vertices")
	}
	stats.OnVoronoiBuilt(len(diagram.Vertices), len(diagram.Edges))

	if ctx.Err() != nil {
		return nil, newError(InvalidInput, "canceled during Voronoi construction")
	}

	g := skeleton.FromDiagram(diagram, skeleton.ImportConfig{
		DiscretizationStepSize: cfg.DiscretizationStepSize,
		TransitioningAngle:     cfg.TransitioningAngle,
		MinEdgeLength:          cfg.MinEdgeLength,
	})
	stats.OnGraphImported(len(g.Nodes), len(g.Edges))

	markingCfg := skeletonMarkingConfig(cfg)
	skeleton.UpdateMarking(g, markingCfg)
	if cfg.UnmarkOutermostCentralEdges {
		unmarkOutermost(g)
	}
	centralCount := countCentral(g)
	stats.OnMarkingComplete(centralCount)
	if centralCount == 0 {
		return nil, newError(DegenerateVoronoi, "no central edges survived marking")
	}

	return finishPipeline(ctx, g, cfg, strategy, stats)
}

func boundsMarginFor(region geomtypes.Region) int64 {
	box := geomtypes.ForPolygon(region.Outer)
	w := box.MaxX - box.MinX
	h := box.MaxY - box.MinY
	margin := w
	if h > margin {
		margin = h
	}
	if margin < 1000 {
		margin = 1000
	}
	return margin
}

func skeletonMarkingConfig(cfg Config) skeleton.MarkingConfig {
	return skeleton.MarkingConfig{
		CentralAngleThreshold: cfg.TransitioningAngle,
		MarkingFilterDist:     cfg.MarkingFilterDist,
	}
}

func countCentral(g *skeleton.Graph) int {
	n := 0
	for _, e := range g.Edges {
		if e.IsCentral {
			n++
		}
	}
	return n
}

// unmarkOutermost strips the IsCentral flag from edges bounding the
// outermost ring's own boundary cells, mirroring
// generateToolpaths(filter_outermost_marked_edges=true)'s behavior of
// excluding the very outside skin from the central graph.
func unmarkOutermost(g *skeleton.Graph) {
	for i := range g.Edges {
		if g.Nodes[g.Edges[i].From].IsBoundary && g.Nodes[g.Edges[i].To].IsBoundary {
			g.Edges[i].IsCentral = false
		}
	}
}

func checkCanceled(ctx context.Context, stage string) error {
	select {
	case <-ctx.Done():
		return newError(InvalidInput, fmt.Sprintf("canceled during %s", stage))
	default:
		return nil
	}
}
