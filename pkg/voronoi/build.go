package voronoi

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"

	"wallgen/pkg/geomtypes"
)

// BuildConfig controls the sampling resolution and vertex-merge tolerance
// used when constructing the diagram.
type BuildConfig struct {
	// DiscretizationStepSize bounds the spacing at which segment sites are
	// sampled into interior point sites before the point-site diagram is
	// built. Mirrors SkeletalTrapezoidationConfig's discretization_step_size.
	DiscretizationStepSize int64
	// SnapDist is the coordinate-merge tolerance used to weld near-duplicate
	// diagram vertices coming from adjacent sample cells, mirroring
	// VoronoiDiagram.Repair(epsilon) from the corpus.
	SnapDist int64
	// BoundsMargin extends the clipping bounding box beyond the input
	// geometry's own AABB so that open (unbounded) cells on the convex hull
	// still close into finite polygons.
	BoundsMargin int64
}

// DefaultBuildConfig returns sane defaults scaled for micrometer coordinates.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		DiscretizationStepSize: 200,
		SnapDist:               20,
		BoundsMargin:           1_000_000,
	}
}

// sample is one interior point used to build the point-site approximation of
// the true segment-site diagram.
type sample struct {
	pos       geomtypes.Point
	site      Site // Kind == SourceSegment for segment interior samples
	segStart  geomtypes.Point
	segEnd    geomtypes.Point
	cellEdges []geomtypes.Segment // clipped Voronoi cell boundary, CCW
}

// Build constructs the segment-site Voronoi diagram for the polygon rings of
// a region. Each ring is walked as a closed sequence of directed edges.
//
// Grounded on other_examples' voidshard-citygraph voronoi-impl.go (half-plane
// cell construction, Repair()-style coordinate welding) combined with the
// analytic discretizeParabola curve from VoronoiUtils.cpp; see DESIGN.md.
func Build(rings []geomtypes.Polygon, cfg BuildConfig) *Diagram {
	samples := sampleRings(rings, cfg)
	box := boundingBox(samples, cfg.BoundsMargin)

	for i := range samples {
		samples[i].cellEdges = clipCell(samples, i, box)
	}

	d := &Diagram{}
	weld := newWelder(cfg.SnapDist)

	// Build raw per-sample cells as half-edge cycles over welded vertices.
	cellOf := make([]CellID, len(samples))
	for i, s := range samples {
		cid := CellID(len(d.Cells))
		cellOf[i] = cid
		d.Cells = append(d.Cells, Cell{Site: s.site, Edge: NoEdge})

		var firstEdge, prevEdge EdgeID = NoEdge, NoEdge
		for _, seg := range s.cellEdges {
			vA := weld.vertex(d, seg.A)
			vB := weld.vertex(d, seg.B)
			if vA == vB {
				continue
			}
			e := d.addEdge(vA, vB, cid)
			if prevEdge != NoEdge {
				d.Edges[prevEdge].Next = e
			} else {
				firstEdge = e
			}
			prevEdge = e
		}
		if prevEdge != NoEdge && firstEdge != NoEdge {
			d.Edges[prevEdge].Next = firstEdge
		}
		d.Cells[cid].Edge = firstEdge
	}

	linkTwins(d)
	mergeSegmentCells(d, samples, cellOf)
	attachParabolaCurves(d, samples, cellOf)

	return d
}

// sampleRings expands each ring's edges into point sites (interior samples
// of every segment, plus the polygon vertices themselves as point sites).
func sampleRings(rings []geomtypes.Polygon, cfg BuildConfig) []sample {
	var samples []sample
	for ringIdx, ring := range rings {
		n := len(ring)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			seg := geomtypes.Segment{A: a, B: b}
			length := seg.LengthF()
			steps := int64(length/float64(cfg.DiscretizationStepSize) + 0.5)
			if steps < 1 {
				steps = 1
			}
			for step := int64(1); step < steps; step++ {
				t := float64(step) / float64(steps)
				samples = append(samples, sample{
					pos:      geomtypes.Lerp(a, b, t),
					site:     Site{Kind: SourceSegment, Segment: seg, RingIdx: ringIdx, PointIdx: i},
					segStart: a,
					segEnd:   b,
				})
			}
			// The vertex a itself is a point site (polygon corner).
			samples = append(samples, sample{
				pos:  a,
				site: Site{Kind: SourcePoint, Point: a, RingIdx: ringIdx, PointIdx: i},
			})
		}
	}
	return samples
}

func boundingBox(samples []sample, margin int64) geomtypes.AABB {
	box := geomtypes.Empty()
	for _, s := range samples {
		box = box.Expand(s.pos)
	}
	box.MinX -= margin
	box.MinY -= margin
	box.MaxX += margin
	box.MaxY += margin
	return box
}

// clipCell computes the Voronoi cell of samples[i] by starting from the
// bounding box and repeatedly half-plane clipping against the perpendicular
// bisector of samples[i] and every other sample, Sutherland-Hodgman style.
// This is the direct generalization of the half-plane/constraint-polytope
// approach in voidshard-citygraph's VoronoiCells.
func clipCell(samples []sample, i int, box geomtypes.AABB) []geomtypes.Segment {
	poly := []geomtypes.Point{
		{box.MinX, box.MinY}, {box.MaxX, box.MinY}, {box.MaxX, box.MaxY}, {box.MinX, box.MaxY},
	}
	c := samples[i].pos

	for j, other := range samples {
		if j == i {
			continue
		}
		o := other.pos
		if o == c {
			continue
		}
		midX := float64(c.X+o.X) / 2
		midY := float64(c.Y+o.Y) / 2
		nx := float64(o.X - c.X)
		ny := float64(o.Y - c.Y)
		maxVal := nx*midX + ny*midY

		poly = clipHalfPlane(poly, nx, ny, maxVal)
		if len(poly) == 0 {
			break
		}
	}

	segs := make([]geomtypes.Segment, 0, len(poly))
	for k := 0; k < len(poly); k++ {
		segs = append(segs, geomtypes.Segment{A: poly[k], B: poly[(k+1)%len(poly)]})
	}
	return segs
}

// clipHalfPlane keeps the portion of poly where nx*x+ny*y <= maxVal.
func clipHalfPlane(poly []geomtypes.Point, nx, ny, maxVal float64) []geomtypes.Point {
	if len(poly) == 0 {
		return poly
	}
	inside := func(p geomtypes.Point) bool {
		return nx*float64(p.X)+ny*float64(p.Y) <= maxVal+1e-6
	}
	intersect := func(a, b geomtypes.Point) geomtypes.Point {
		va := nx*float64(a.X) + ny*float64(a.Y) - maxVal
		vb := nx*float64(b.X) + ny*float64(b.Y) - maxVal
		t := va / (va - vb)
		return geomtypes.Lerp(a, b, t)
	}

	var out []geomtypes.Point
	n := len(poly)
	for k := 0; k < n; k++ {
		cur := poly[k]
		next := poly[(k+1)%n]
		curIn := inside(cur)
		nextIn := inside(next)
		if curIn {
			out = append(out, cur)
			if !nextIn {
				out = append(out, intersect(cur, next))
			}
		} else if nextIn {
			out = append(out, intersect(cur, next))
		}
	}
	return out
}

// welder deduplicates near-identical Voronoi vertex coordinates using an
// rtree nearest-neighbor index, directly analogous to Repair(epsilon)'s
// CoordTree-based coordinate merging in voidshard-citygraph.
type welder struct {
	tol   int64
	index rtree.RTreeG[VertexID]
}

func newWelder(tol int64) *welder {
	return &welder{tol: tol}
}

func (w *welder) vertex(d *Diagram, p geomtypes.Point) VertexID {
	lo := [2]float64{float64(p.X - w.tol), float64(p.Y - w.tol)}
	hi := [2]float64{float64(p.X + w.tol), float64(p.Y + w.tol)}

	var found VertexID = NoVertex
	bestDist := math.MaxFloat64
	w.index.Search(lo, hi, func(_, _ [2]float64, id VertexID) bool {
		dist := p.DistanceF(d.Vertices[id].Pos)
		if dist < bestDist {
			bestDist = dist
			found = id
		}
		return true
	})

	if found != NoVertex && bestDist <= float64(w.tol) {
		return found
	}

	id := d.addVertex(p)
	pt := [2]float64{float64(p.X), float64(p.Y)}
	w.index.Insert(pt, pt, id)
	return id
}

// linkTwins pairs up half-edges that connect the same two welded vertices in
// opposite directions.
func linkTwins(d *Diagram) {
	type key struct{ a, b VertexID }
	byKey := make(map[key]EdgeID, len(d.Edges))
	for i, e := range d.Edges {
		byKey[key{e.Start, e.End}] = EdgeID(i)
	}
	for i, e := range d.Edges {
		if d.Edges[i].Twin != NoEdge {
			continue
		}
		if twin, ok := byKey[key{e.End, e.Start}]; ok {
			d.Edges[i].Twin = twin
			d.Edges[twin].Twin = EdgeID(i)
		}
	}
}

// mergeSegmentCells fuses all interior-sample cells belonging to the same
// source segment edge into one logical cell, by relabeling their Cell field
// to a single representative and dropping the internal edges shared between
// consecutive samples (the edges whose twin also belongs to the same merged
// group). The remaining boundary half-edges are re-stitched into one cycle
// via endpoint adjacency, exactly mirroring Repair()'s "starts" map.
func mergeSegmentCells(d *Diagram, samples []sample, cellOf []CellID) {
	type segKey struct {
		ringIdx, pointIdx int
	}
	groups := make(map[segKey][]CellID)
	for i, s := range samples {
		if s.site.Kind != SourceSegment {
			continue
		}
		k := segKey{s.site.RingIdx, s.site.PointIdx}
		groups[k] = append(groups[k], cellOf[i])
	}

	for _, cids := range groups {
		if len(cids) < 2 {
			continue
		}
		repr := cids[0]
		members := make(map[CellID]bool, len(cids))
		for _, c := range cids {
			members[c] = true
		}

		// Reassign all edges belonging to a merged member cell to repr, and
		// drop edges whose twin also belongs to a merged member (they were
		// internal boundaries between adjacent samples of the same segment).
		var keep []EdgeID
		for i := range d.Edges {
			e := &d.Edges[i]
			if !members[e.Cell] {
				continue
			}
			twinCell := CellID(-1)
			if e.Twin != NoEdge {
				twinCell = d.Edges[e.Twin].Cell
			}
			if members[twinCell] {
				continue // internal edge between two samples of the same segment
			}
			e.Cell = repr
			keep = append(keep, EdgeID(i))
		}

		restitch(d, keep)
		d.Cells[repr].Edge = NoEdge
		if len(keep) > 0 {
			d.Cells[repr].Edge = keep[0]
		}
		for _, c := range cids[1:] {
			d.Cells[c].Edge = NoEdge // retired; repr now owns the merged boundary
		}
	}
}

// restitch rebuilds the Next chain over a cell's surviving boundary edges by
// matching each edge's End vertex to the next edge starting there, the same
// "starts" map technique Repair() uses after coordinate welding.
func restitch(d *Diagram, edges []EdgeID) {
	starts := make(map[VertexID]EdgeID, len(edges))
	for _, e := range edges {
		starts[d.Edges[e].Start] = e
	}
	for _, e := range edges {
		if next, ok := starts[d.Edges[e].End]; ok {
			d.Edges[e].Next = next
		} else {
			d.Edges[e].Next = NoEdge
		}
	}
}

// attachParabolaCurves marks edges that separate a point cell from a merged
// segment cell as parabolic, recording the true (point, segment) source pair
// so DiscretizeParabola can compute the exact analytic curve later,
// independent of the sampling resolution used to build the topology.
func attachParabolaCurves(d *Diagram, samples []sample, cellOf []CellID) {
	repCell := make(map[CellID]*sample) // one representative segment-sample per merged cell
	for i, s := range samples {
		if s.site.Kind == SourceSegment {
			if _, ok := repCell[cellOf[i]]; !ok {
				repCell[cellOf[i]] = &samples[i]
			}
		}
	}

	for i := range d.Edges {
		e := &d.Edges[i]
		if e.Twin == NoEdge {
			continue
		}
		cellA := d.Cells[e.Cell].Site
		cellB := d.Cells[d.Edges[e.Twin].Cell].Site

		var pointSite, segSite *Site
		if cellA.Kind == SourcePoint && cellB.Kind == SourceSegment {
			pointSite, segSite = &cellA, &cellB
		} else if cellB.Kind == SourcePoint && cellA.Kind == SourceSegment {
			pointSite, segSite = &cellB, &cellA
		} else {
			continue
		}

		e.Curve = EdgeCurve{IsParabola: true, Point: pointSite.Point, Segment: segSite.Segment}
	}
}

// sortedVertexIDs returns vertex IDs sorted by position, useful for
// deterministic iteration in tests.
func sortedVertexIDs(d *Diagram) []VertexID {
	ids := make([]VertexID, len(d.Vertices))
	for i := range ids {
		ids[i] = VertexID(i)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := d.Vertices[ids[i]].Pos, d.Vertices[ids[j]].Pos
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return ids
}
