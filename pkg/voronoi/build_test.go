package voronoi

import (
	"testing"

	"wallgen/pkg/geomtypes"
)

func TestBuildSquareProducesDiagram(t *testing.T) {
	square := geomtypes.Polygon{
		{0, 0}, {10000, 0}, {10000, 10000}, {0, 10000},
	}
	d := Build([]geomtypes.Polygon{square}, BuildConfig{
		DiscretizationStepSize: 2000,
		SnapDist:               20,
		BoundsMargin:           50000,
	})

	if len(d.Cells) == 0 {
		t.Fatal("expected at least one cell")
	}
	if len(d.Vertices) == 0 {
		t.Fatal("expected at least one vertex")
	}

	foundSegmentCell := false
	for _, c := range d.Cells {
		if c.Site.Kind == SourceSegment && c.Edge != NoEdge {
			foundSegmentCell = true
		}
	}
	if !foundSegmentCell {
		t.Error("expected at least one surviving merged segment cell")
	}
}

func TestDiscretizeParabolaDegenerateOnLine(t *testing.T) {
	seg := geomtypes.Segment{A: geomtypes.Point{0, 0}, B: geomtypes.Point{1000, 0}}
	p := geomtypes.Point{500, 0} // sits exactly on the line -> d == 0
	pts := DiscretizeParabola(p, seg, geomtypes.Point{0, 0}, geomtypes.Point{1000, 0}, 100, 1.0)
	if len(pts) != 2 {
		t.Fatalf("expected degenerate 2-point result, got %d points", len(pts))
	}
}

func TestDiscretizeParabolaBasicShape(t *testing.T) {
	seg := geomtypes.Segment{A: geomtypes.Point{0, 0}, B: geomtypes.Point{10000, 0}}
	p := geomtypes.Point{5000, 2000}
	s := geomtypes.Point{2000, 1000}
	e := geomtypes.Point{8000, 1000}
	pts := DiscretizeParabola(p, seg, s, e, 500, 1.0)

	if len(pts) < 2 {
		t.Fatalf("expected multiple sample points, got %d", len(pts))
	}
	if pts[0] != s {
		t.Errorf("first point = %+v, want start %+v", pts[0], s)
	}
	if pts[len(pts)-1] != e {
		t.Errorf("last point = %+v, want end %+v", pts[len(pts)-1], e)
	}
}

func TestClipHalfPlane(t *testing.T) {
	square := []geomtypes.Point{{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000}}
	// Keep only x <= 500.
	clipped := clipHalfPlane(square, 1, 0, 500)
	for _, p := range clipped {
		if p.X > 500 {
			t.Errorf("point %+v outside half-plane x<=500", p)
		}
	}
	if len(clipped) < 3 {
		t.Errorf("expected a valid polygon after clipping, got %d points", len(clipped))
	}
}
