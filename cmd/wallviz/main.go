// Command wallviz renders a region's generated wall toolpaths to an SVG
// file for visual inspection, the variable-width-wall analogue of
// cmd/visualize's HTTP route comparison tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"wallgen/pkg/beading"
	"wallgen/pkg/geomtypes"
	"wallgen/pkg/junction"
	"wallgen/pkg/wallgen"
)

func main() {
	output := flag.String("output", "walls.svg", "Output SVG file path")
	side := flag.Int64("side", 20000, "Side length (micrometers) of the test square region to generate walls for")
	minWidth := flag.Int64("min-width", 100, "Minimum bead width (micrometers)")
	maxWidth := flag.Int64("max-width", 1200, "Maximum bead width (micrometers)")
	preferredWidth := flag.Int64("preferred-width", 400, "Preferred (nominal) bead width (micrometers)")
	flag.Parse()

	region := geomtypes.Region{
		Outer: geomtypes.Polygon{
			{0, 0}, {*side, 0}, {*side, *side}, {0, *side},
		},
	}

	strategy := beading.CenterDeviation{
		Inner: beading.Distributed{Params: beading.Params{
			MinWidth: *minWidth, MaxWidth: *maxWidth, PreferredWidth: *preferredWidth,
		}},
	}

	cfg := wallgen.DefaultConfig()
	cfg.MinBeadWidth = *minWidth
	cfg.MaxBeadWidth = *maxWidth
	cfg.PreferredWidth = *preferredWidth

	log.Printf("generating walls for %dx%d um square region", *side, *side)
	result, err := wallgen.GenerateWalls(context.Background(), region, cfg, strategy, loggingStats{})
	if err != nil {
		log.Fatalf("GenerateWalls failed: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *output, err)
	}
	defer f.Close()

	if err := writeSVG(f, region, result.Lines); err != nil {
		log.Fatalf("failed to write SVG: %v", err)
	}
	log.Printf("wrote %d toolpath lines to %s", len(result.Lines), *output)
}

type loggingStats struct{}

func (loggingStats) OnVoronoiBuilt(v, e int)       { log.Printf("voronoi: %d vertices, %d edges", v, e) }
func (loggingStats) OnGraphImported(n, e int)      { log.Printf("skeleton: %d nodes, %d edges", n, e) }
func (loggingStats) OnMarkingComplete(n int)       { log.Printf("marking: %d central edges", n) }
func (loggingStats) OnTransitionsPlanned(m, e int) { log.Printf("transitions: %d middles, %d ends", m, e) }
func (loggingStats) OnBeadingPropagated(n int)     { log.Printf("propagation: %d nodes assigned", n) }
func (loggingStats) OnJunctionsStitched(n int)     { log.Printf("stitching: %d toolpath lines", n) }

func writeSVG(w *os.File, region geomtypes.Region, lines []junction.ExtrusionLine) error {
	box := geomtypes.ForPolygon(region.Outer)
	width := box.MaxX - box.MinX
	height := box.MaxY - box.MinY

	if _, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d">`+"\n",
		box.MinX, box.MinY, width, height); err != nil {
		return err
	}

	fmt.Fprintf(w, `<polygon points="%s" fill="none" stroke="black" stroke-width="5"/>`+"\n", polygonPoints(region.Outer))

	colors := []string{"red", "blue", "green", "orange", "purple", "teal"}
	for i, line := range lines {
		if line.Empty() {
			continue
		}
		color := colors[i%len(colors)]
		fmt.Fprintf(w, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n", linePoints(line), color)
	}

	_, err := fmt.Fprintln(w, "</svg>")
	return err
}

func polygonPoints(p geomtypes.Polygon) string {
	s := ""
	for _, pt := range p {
		s += fmt.Sprintf("%d,%d ", pt.X, pt.Y)
	}
	return s
}

func linePoints(l junction.ExtrusionLine) string {
	s := ""
	for _, j := range l.Junctions {
		s += fmt.Sprintf("%d,%d ", j.Pos.X, j.Pos.Y)
	}
	return s
}
