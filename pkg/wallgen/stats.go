package wallgen

// StatsSink is an optional observer hook GenerateWalls reports pipeline
// stage counts to, supplementing the original implementation's debug
// logging (CuraEngine gates most of this behind compile-time debug output;
// here it is a first-class, always-cheap interface instead).
type StatsSink interface {
	OnVoronoiBuilt(vertexCount, edgeCount int)
	OnGraphImported(nodeCount, edgeCount int)
	OnMarkingComplete(centralEdgeCount int)
	OnTransitionsPlanned(middleCount, endCount int)
	OnBeadingPropagated(nodeCount int)
	OnJunctionsStitched(lineCount int)
}

// NoopStats implements StatsSink with no-ops, the default when a caller
// passes a nil sink.
type NoopStats struct{}

func (NoopStats) OnVoronoiBuilt(int, int)       {}
func (NoopStats) OnGraphImported(int, int)      {}
func (NoopStats) OnMarkingComplete(int)         {}
func (NoopStats) OnTransitionsPlanned(int, int) {}
func (NoopStats) OnBeadingPropagated(int)       {}
func (NoopStats) OnJunctionsStitched(int)       {}
