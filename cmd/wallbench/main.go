// Command wallbench runs wall generation over a fixed set of representative
// region scenarios (a plain square, a thin sliver, an L-shape, a region with
// a hole, and a sharp-spike corner) and reports timing and line counts for
// each — the wall-generation analogue of cmd/preprocess's batch pipeline
// timing log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"wallgen/pkg/beading"
	"wallgen/pkg/geomtypes"
	"wallgen/pkg/wallgen"
)

type scenario struct {
	name   string
	region geomtypes.Region
}

func scenarios() []scenario {
	return []scenario{
		{
			name: "square",
			region: geomtypes.Region{Outer: geomtypes.Polygon{
				{0, 0}, {20000, 0}, {20000, 20000}, {0, 20000},
			}},
		},
		{
			name: "thin_rectangle",
			region: geomtypes.Region{Outer: geomtypes.Polygon{
				{0, 0}, {20000, 0}, {20000, 600}, {0, 600},
			}},
		},
		{
			name: "l_shape",
			region: geomtypes.Region{Outer: geomtypes.Polygon{
				{0, 0}, {20000, 0}, {20000, 8000}, {8000, 8000}, {8000, 20000}, {0, 20000},
			}},
		},
		{
			name: "square_with_hole",
			region: geomtypes.Region{
				Outer: geomtypes.Polygon{{0, 0}, {20000, 0}, {20000, 20000}, {0, 20000}},
				Holes: []geomtypes.Polygon{
					geomtypes.Polygon{{8000, 8000}, {8000, 12000}, {12000, 12000}, {12000, 8000}}, // CW
				},
			},
		},
		{
			name: "sharp_spike",
			region: geomtypes.Region{Outer: geomtypes.Polygon{
				{0, 0}, {20000, 0}, {10000, 30000},
			}},
		},
	}
}

func main() {
	preferredWidth := flag.Int64("preferred-width", 400, "Preferred bead width (micrometers)")
	minWidth := flag.Int64("min-width", 100, "Minimum bead width (micrometers)")
	maxWidth := flag.Int64("max-width", 1200, "Maximum bead width (micrometers)")
	flag.Parse()

	strategy := beading.CenterDeviation{
		Inner: beading.Distributed{Params: beading.Params{
			MinWidth: *minWidth, MaxWidth: *maxWidth, PreferredWidth: *preferredWidth,
		}},
	}
	cfg := wallgen.DefaultConfig()
	cfg.MinBeadWidth, cfg.MaxBeadWidth, cfg.PreferredWidth = *minWidth, *maxWidth, *preferredWidth

	total := time.Now()
	for _, sc := range scenarios() {
		start := time.Now()
		result, err := wallgen.GenerateWalls(context.Background(), sc.region, cfg, strategy, nil)
		elapsed := time.Since(start)
		if err != nil {
			log.Printf("%-20s FAILED after %v: %v", sc.name, elapsed, err)
			continue
		}
		fmt.Printf("%-20s ok  %8v  %d lines\n", sc.name, elapsed, len(result.Lines))
	}
	log.Printf("total: %v", time.Since(total))
}
