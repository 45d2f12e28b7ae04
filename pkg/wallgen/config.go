package wallgen

// PreferStrategy names a preference between two bead counts that would both
// be valid at a transition boundary.
//
// Open Question decision recorded in DESIGN.md: defaults to
// PreferFewerBeads, matching the rounding-down bias of
// BeadingStrategy::getOptimalBeadCount in the original implementation.
// GenerateWalls does not read this field: bead counts come from the
// strategy's OptimalBeadCount alone, so the value has no effect on the
// output.
type PreferStrategy int

const (
	PreferFewerBeads PreferStrategy = iota
	PreferWiderBeads
)

// Config mirrors SkeletalTrapezoidationConfig, grouping every tunable this
// module exposes under one struct the way pkg/routing.Engine and
// pkg/api.ServerConfig hang their options.
type Config struct {
	TransitioningAngle               float64
	DiscretizationStepSize           int64
	TransitionFilterDist             int64
	BeadingPropagationTransitionDist int64
	MarkingFilterDist                int64
	SnapDist                         int64
	MinEdgeLength                    int64

	MinBeadWidth     int64
	MaxBeadWidth     int64
	PreferredWidth   int64
	MaxBeads         int

	Simplify SimplifyConfig

	PreferStrategy PreferStrategy
	// UnmarkOutermostCentralEdges mirrors generateToolpaths's
	// filter_outermost_marked_edges parameter, promoted to a config field
	// (see DESIGN.md's Open Question decisions).
	UnmarkOutermostCentralEdges bool
}

// SimplifyConfig mirrors pkg/simplify.Config, duplicated here so callers can
// configure GenerateWalls without importing the simplify package directly.
type SimplifyConfig struct {
	MaxResolution    int64
	MaxDeviation     int64
	MaxAreaDeviation int64
}

// DefaultConfig returns the same defaults original_source's
// SkeletalTrapezoidation.h class-member initializers use, mirroring
// pkg/routing.DefaultConfig's role of giving every field a sane starting
// point.
func DefaultConfig() Config {
	return Config{
		TransitioningAngle:               1.0,
		DiscretizationStepSize:           200,
		TransitionFilterDist:             1000,
		BeadingPropagationTransitionDist: 400,
		MarkingFilterDist:                20,
		SnapDist:                         20,
		MinEdgeLength:                    20,

		MinBeadWidth:   100,
		MaxBeadWidth:   1200,
		PreferredWidth: 400,
		MaxBeads:       12,

		Simplify: SimplifyConfig{
			MaxResolution:    25,
			MaxDeviation:     5,
			MaxAreaDeviation: 100,
		},

		PreferStrategy: PreferFewerBeads,
	}
}
