package simplify

import (
	"testing"

	"wallgen/pkg/geomtypes"
	"wallgen/pkg/junction"
)

func straightLine(n int) junction.ExtrusionLine {
	js := make([]junction.Junction, n)
	for i := 0; i < n; i++ {
		js[i] = junction.Junction{Pos: geomtypes.Point{X: int64(i) * 100, Y: 0}, Width: 400}
	}
	return junction.ExtrusionLine{Junctions: js}
}

func TestPolylineSimplifiesStraightRun(t *testing.T) {
	line := straightLine(20)
	out := Polyline(line, Config{MaxResolution: 50, MaxDeviation: 10, MaxAreaDeviation: 100})
	if len(out.Junctions) >= len(line.Junctions) {
		t.Errorf("expected simplification to reduce point count: got %d from %d", len(out.Junctions), len(line.Junctions))
	}
	if len(out.Junctions) < 2 {
		t.Error("simplification should not remove both endpoints")
	}
}

func TestPolylineShortLineUnchanged(t *testing.T) {
	line := straightLine(2)
	out := Polyline(line, Config{MaxResolution: 50, MaxDeviation: 10, MaxAreaDeviation: 100})
	if len(out.Junctions) != 2 {
		t.Errorf("expected 2-point line to pass through unchanged, got %d", len(out.Junctions))
	}
}

func TestFilterByResolutionKeepsEndpoints(t *testing.T) {
	pts := []junction.Junction{
		{Pos: geomtypes.Point{0, 0}},
		{Pos: geomtypes.Point{1, 0}},
		{Pos: geomtypes.Point{2, 0}},
		{Pos: geomtypes.Point{1000, 0}},
	}
	out := filterByResolution(pts, 50)
	if out[0].Pos != pts[0].Pos || out[len(out)-1].Pos != pts[len(pts)-1].Pos {
		t.Error("endpoints must always be preserved")
	}
}
