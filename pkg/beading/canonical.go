package beading

// Distributed splits the total thickness evenly across beadCount beads,
// each clamped to [MinWidth, MaxWidth]. This is the simplest canonical
// strategy and the default inner-bead behavior the other strategies
// decorate.
type Distributed struct {
	Params Params
}

func (d Distributed) OptimalBeadCount(thickness int64) int {
	if d.Params.PreferredWidth <= 0 {
		return 1
	}
	count := int(thickness / d.Params.PreferredWidth)
	if count < 1 {
		count = 1
	}
	return count
}

func (d Distributed) Compute(thickness int64, beadCount int) Beading {
	if beadCount <= 0 {
		return Beading{TotalWidth: thickness, LeftOverWidth: thickness}
	}
	width := thickness / int64(beadCount)
	if width < d.Params.MinWidth {
		width = d.Params.MinWidth
	}
	if d.Params.MaxWidth > 0 && width > d.Params.MaxWidth {
		width = d.Params.MaxWidth
	}
	beads := make([]Bead, beadCount)
	for i := range beads {
		beads[i] = Bead{Width: width}
	}
	used := width * int64(beadCount)
	return Beading{Beads: beads, TotalWidth: thickness, LeftOverWidth: thickness - used}
}

// CenterDeviation adds the wrapped strategy's LeftOverWidth to the center
// bead (index len/2, the one straddling the medial-axis center), so the
// other beads keep the widths the wrapped strategy chose while the center
// line takes the slack — the shape of CuraEngine's default "center
// deviation" beading behavior. Params is not read: this decorator sets no
// bead to PreferredWidth.
type CenterDeviation struct {
	Inner Strategy
	Params Params
}

func (c CenterDeviation) OptimalBeadCount(thickness int64) int {
	return c.Inner.OptimalBeadCount(thickness)
}

func (c CenterDeviation) Compute(thickness int64, beadCount int) Beading {
	b := c.Inner.Compute(thickness, beadCount)
	if len(b.Beads) == 0 {
		return b
	}
	centerIdx := len(b.Beads) / 2
	b.Beads[centerIdx].Width += b.LeftOverWidth
	b.LeftOverWidth = 0
	return b
}

// WidthLimited caps every individual bead at MaxWidth regardless of what
// the wrapped strategy would otherwise produce, splitting any bead that
// would exceed it into the fewest near-even parts that each fit.
type WidthLimited struct {
	Inner    Strategy
	MaxWidth int64
}

func (w WidthLimited) OptimalBeadCount(thickness int64) int {
	return w.Inner.OptimalBeadCount(thickness)
}

func (w WidthLimited) Compute(thickness int64, beadCount int) Beading {
	b := w.Inner.Compute(thickness, beadCount)
	if w.MaxWidth <= 0 {
		return b
	}
	var out []Bead
	for _, bead := range b.Beads {
		if bead.Width > w.MaxWidth {
			parts := (bead.Width + w.MaxWidth - 1) / w.MaxWidth
			for k := int64(0); k < parts; k++ {
				out = append(out, Bead{Width: bead.Width*(k+1)/parts - bead.Width*k/parts})
			}
		} else {
			out = append(out, bead)
		}
	}
	b.Beads = out
	return b
}

// OuterWallPreferred biases the outermost bead toward PreferredWidth (the
// profile's nominal line width) at the expense of inner beads, so the
// visible surface wall stays consistent even when the interior beads must
// flex to fit an odd total thickness.
type OuterWallPreferred struct {
	Inner  Strategy
	Params Params
}

func (o OuterWallPreferred) OptimalBeadCount(thickness int64) int {
	return o.Inner.OptimalBeadCount(thickness)
}

func (o OuterWallPreferred) Compute(thickness int64, beadCount int) Beading {
	b := o.Inner.Compute(thickness, beadCount)
	if len(b.Beads) == 0 || o.Params.PreferredWidth <= 0 {
		return b
	}
	outer := &b.Beads[0]
	want := o.Params.PreferredWidth
	if outer.Width == want {
		return b
	}
	delta := want - outer.Width
	// Only take from / give to the leftover pool and the innermost bead,
	// never push the outer bead outside its own bounds.
	if outer.Width+delta >= o.Params.MinWidth {
		outer.Width += delta
		if len(b.Beads) > 1 {
			b.Beads[len(b.Beads)-1].Width -= delta
		} else {
			b.LeftOverWidth -= delta
		}
	}
	return b
}

// BeadCountClamp reruns the wrapped strategy after clamping beadCount to a
// safe [1, maxBeads] range, protecting callers (e.g. transition planning
// boundary probes) from ever asking a strategy to produce zero or a
// pathologically large bead count. This is bookkeeping, not one of §4.4's
// five canonical strategies; it previously went by the name Redistribute,
// which belongs to the convexity-biased strategy below instead.
type BeadCountClamp struct {
	Inner    Strategy
	MaxBeads int
}

func (r BeadCountClamp) OptimalBeadCount(thickness int64) int {
	n := r.Inner.OptimalBeadCount(thickness)
	return r.clamp(n)
}

func (r BeadCountClamp) Compute(thickness int64, beadCount int) Beading {
	return r.Inner.Compute(thickness, r.clamp(beadCount))
}

func (r BeadCountClamp) clamp(n int) int {
	if n < 1 {
		return 1
	}
	if r.MaxBeads > 0 && n > r.MaxBeads {
		return r.MaxBeads
	}
	return n
}

// Redistribute reallocates a wrapped strategy's LeftOverWidth (the slack no
// bead's width could exactly absorb) across the beads with a convexity bias,
// rather than leaving it unused: a positive leftover means the wrapped
// strategy under-filled the available thickness, the signature of a locally
// convex stretch of outline with slack to spare, so the bias pushes that
// slack outward into the low-index (outer, visible) beads; a negative
// leftover means the strategy over-committed width it didn't have, the
// signature of a concave pinch, so the bias pulls the deficit inward into
// the high-index (inner) beads, protecting the outer wall's width. No
// ground-truth implementation of this strategy was found in the retrieved
// corpus (see DESIGN.md) — the leftover-width sign is used here as the
// concavity/convexity proxy since it is the only signal Compute's
// (thickness, beadCount) signature carries.
type Redistribute struct {
	Inner Strategy
}

func (r Redistribute) OptimalBeadCount(thickness int64) int {
	return r.Inner.OptimalBeadCount(thickness)
}

func (r Redistribute) Compute(thickness int64, beadCount int) Beading {
	b := r.Inner.Compute(thickness, beadCount)
	n := len(b.Beads)
	if n == 0 || b.LeftOverWidth == 0 {
		return b
	}

	weights := make([]float64, n)
	var total float64
	for i := range weights {
		w := float64(i + 1)
		if b.LeftOverWidth > 0 {
			w = float64(n - i) // convex slack: bias toward the outer beads
		}
		weights[i] = w
		total += w
	}

	remaining := b.LeftOverWidth
	for i := range b.Beads {
		share := int64(float64(b.LeftOverWidth) * weights[i] / total)
		if b.Beads[i].Width+share < 0 {
			share = -b.Beads[i].Width
		}
		b.Beads[i].Width += share
		remaining -= share
	}
	// Rounding remainder goes to the outermost bead, keeping the visible
	// surface wall as close as possible to its strategy-computed width.
	if b.Beads[0].Width+remaining >= 0 {
		b.Beads[0].Width += remaining
	}
	b.LeftOverWidth = 0
	return b
}
