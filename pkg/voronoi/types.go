// Package voronoi builds a segment-site Voronoi diagram over a region's
// polygon edges: the geometric foundation the skeletal trapezoidation graph
// is built from. Diagram vertices become skeleton nodes; diagram edges
// (point-point straight bisectors, or point-segment parabolic bisectors)
// become skeleton edges.
//
// See DESIGN.md for why this is one of the few components not wired onto a
// third-party library: no repo in the corpus implements a segment-site
// Voronoi diagram, so the construction here is a from-scratch approximation
// (sample-and-merge) with exact analytic curves attached to each edge.
package voronoi

import "wallgen/pkg/geomtypes"

// SourceKind identifies what kind of geometric primitive a Voronoi cell was
// grown from.
type SourceKind uint8

const (
	SourcePoint SourceKind = iota
	SourceSegment
)

// Site is one Voronoi input: either an isolated polygon vertex (SourcePoint)
// or a polygon edge (SourceSegment). RingIdx/PointIdx identify which polygon
// ring and which vertex/edge-start the site came from, so downstream code
// can walk back to the originating polygon boundary.
type Site struct {
	Kind     SourceKind
	Point    geomtypes.Point   // valid when Kind == SourcePoint
	Segment  geomtypes.Segment // valid when Kind == SourceSegment
	RingIdx  int
	PointIdx int
}

// VertexID indexes into Diagram.Vertices.
type VertexID int32

// EdgeID indexes into Diagram.Edges.
type EdgeID int32

// CellID indexes into Diagram.Cells.
type CellID int32

const NoVertex VertexID = -1
const NoEdge EdgeID = -1

// Vertex is a Voronoi diagram vertex: a point equidistant from three or more
// sites.
type Vertex struct {
	Pos geomtypes.Point
	// Edge is one half-edge incident to this vertex (the "incident_edge_"
	// pattern from the original pointer half-edge graph, now an index).
	Edge EdgeID
}

// EdgeCurve describes how to discretize a point-segment (parabolic) edge.
// Straight point-point edges leave this unset (IsParabola == false).
type EdgeCurve struct {
	IsParabola bool
	// The point site and segment site that generated the parabola, used by
	// DiscretizeParabola to recompute the exact analytic curve regardless of
	// how coarsely the diagram topology itself was sampled.
	Point   geomtypes.Point
	Segment geomtypes.Segment
}

// Edge is a directed Voronoi half-edge. Twin is the oppositely-directed
// half-edge sharing the same two vertices; Next is the next half-edge
// counter-clockwise around Edge's start vertex's cell.
type Edge struct {
	Start, End VertexID
	Twin       EdgeID
	Next       EdgeID
	Cell       CellID
	Curve      EdgeCurve
}

// Cell is the Voronoi region grown from one Site. Edge is one half-edge
// bounding the cell; walking Next from it visits the whole cell boundary.
type Cell struct {
	Site Site
	Edge EdgeID
}

// Diagram is the complete segment-site Voronoi diagram, stored as an
// index-based arena (no pointers), matching the arena convention used
// throughout this module's graphs.
type Diagram struct {
	Vertices []Vertex
	Edges    []Edge
	Cells    []Cell
}

func (d *Diagram) addVertex(p geomtypes.Point) VertexID {
	id := VertexID(len(d.Vertices))
	d.Vertices = append(d.Vertices, Vertex{Pos: p, Edge: NoEdge})
	return id
}

func (d *Diagram) addEdge(start, end VertexID, cell CellID) EdgeID {
	id := EdgeID(len(d.Edges))
	d.Edges = append(d.Edges, Edge{Start: start, End: end, Twin: NoEdge, Next: NoEdge, Cell: cell})
	if d.Vertices[start].Edge == NoEdge {
		d.Vertices[start].Edge = id
	}
	return id
}
