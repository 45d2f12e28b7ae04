package skeleton

// MarkingConfig mirrors the angle/area thresholds
// SkeletalTrapezoidation::updateMarking and filterMarking use.
type MarkingConfig struct {
	// CentralAngleThreshold is the minimum angle (radians) between an edge's
	// two incident boundary segments for the edge to be considered central
	// (part of the wall centerline skeleton) rather than a rib running out
	// to a sharp corner.
	CentralAngleThreshold float64
	// MarkingFilterDist is the threshold on a connected non-central region's
	// summed half-edge length (both directions of an edge count) below which
	// filterUnmarkedRegions re-marks that region central. Central regions are
	// not filtered by size.
	MarkingFilterDist int64
}

// DefaultMarkingConfig returns the values the original uses by default
// (a 45-degree threshold and a 20-unit filter distance).
func DefaultMarkingConfig() MarkingConfig {
	return MarkingConfig{
		CentralAngleThreshold: 0.7853981633974483, // 45 degrees, matches common transitioning_angle defaults
		MarkingFilterDist:     20,
	}
}

// UpdateMarking marks each edge central or not, based on the literal
// opening angle between the two source features the edge's chord witnesses
// (§4.3, invariant G5): an edge stays central only once that angle exceeds
// CentralAngleThreshold (the "transitioning_angle"), the same threshold
// DiscretizeParabola's marking-bound breakpoints are computed from. Ribs are
// never central: they run straight out to the boundary, not along a
// centerline. Mirrors updateMarking from
// original_source/src/SkeletalTrapezoidation.cpp; the real is_marked
// assignment isn't present in the retrieved corpus (only the
// isMarked/setMarked accessor declaration is), so the per-edge angle
// comparison itself is derived directly from the geometry
// DiscretizeParabola already carries rather than copied from a found
// implementation — see DESIGN.md.
func UpdateMarking(g *Graph, cfg MarkingConfig) {
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.IsExtraRib {
			e.IsCentral = false
			continue
		}
		if !e.HasWitnessAngle {
			// Segment-segment edge: no corner to measure, so there is no
			// angle to exceed the threshold — it is central by construction.
			e.IsCentral = true
			continue
		}
		e.IsCentral = e.WitnessAngle > cfg.CentralAngleThreshold
	}

	filterUnmarkedRegions(g, cfg)
}

// filterUnmarkedRegions flood-fills connected non-central regions and
// re-marks any region smaller than MarkingFilterDist as central, preventing
// tiny unmarked slivers from fragmenting the central graph.
// Mirrors filterUnmarkedRegions/filterMarking.
func filterUnmarkedRegions(g *Graph, cfg MarkingConfig) {
	n := len(g.Nodes)
	if n == 0 {
		return
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(x, y int) {
		rx, ry := find(x), find(y)
		if rx != ry {
			parent[ry] = rx
		}
	}

	for _, e := range g.Edges {
		if e.IsCentral || e.IsExtraRib {
			continue
		}
		union(int(e.From), int(e.To))
	}
	// Lengths are summed only after every union is done, so none stays filed
	// under a root that a later union attached to another root.
	regionLen := make(map[int]int64)
	for i, e := range g.Edges {
		if e.IsCentral || e.IsExtraRib {
			continue
		}
		regionLen[find(int(e.From))] += int64(g.EdgeLength(EdgeID(i)))
	}

	for i, e := range g.Edges {
		if e.IsCentral || e.IsExtraRib {
			continue
		}
		root := find(int(e.From))
		if regionLen[root] < cfg.MarkingFilterDist {
			g.Edges[i].IsCentral = true
			g.Edges[i].IsMarkedRegionBoundary = true
		}
	}
}
