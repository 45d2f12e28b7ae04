package beading

import "testing"

func TestDistributedCompute(t *testing.T) {
	d := Distributed{Params: Params{MinWidth: 100, MaxWidth: 1000, PreferredWidth: 400}}
	b := d.Compute(1200, 3)
	if b.BeadCount() != 3 {
		t.Fatalf("expected 3 beads, got %d", b.BeadCount())
	}
	for _, bead := range b.Beads {
		if bead.Width != 400 {
			t.Errorf("expected width 400, got %d", bead.Width)
		}
	}
}

func TestDistributedOptimalBeadCount(t *testing.T) {
	d := Distributed{Params: Params{PreferredWidth: 400}}
	if got := d.OptimalBeadCount(1200); got != 3 {
		t.Errorf("OptimalBeadCount(1200) = %d, want 3", got)
	}
	if got := d.OptimalBeadCount(100); got != 1 {
		t.Errorf("OptimalBeadCount(100) = %d, want 1 (clamped)", got)
	}
}

func TestCenterDeviationAbsorbsLeftover(t *testing.T) {
	d := Distributed{Params: Params{MinWidth: 100, MaxWidth: 1000, PreferredWidth: 400}}
	c := CenterDeviation{Inner: d}
	b := c.Compute(1300, 3) // 1300/3 = 433 (int division -> 433), leftover = 1300-1299=1
	if b.LeftOverWidth != 0 {
		t.Errorf("CenterDeviation should absorb all leftover, got %d", b.LeftOverWidth)
	}
}

func TestWidthLimitedSplitsOversizedBeads(t *testing.T) {
	d := Distributed{Params: Params{MinWidth: 100, MaxWidth: 5000, PreferredWidth: 2000}}
	w := WidthLimited{Inner: d, MaxWidth: 1000}
	b := w.Compute(2000, 1)
	for _, bead := range b.Beads {
		if bead.Width > 1000 {
			t.Errorf("bead width %d exceeds limit", bead.Width)
		}
	}
	if b.BeadCount() != 2 {
		t.Errorf("expected the oversized bead to split into 2, got %d", b.BeadCount())
	}
}

func TestBeadCountClampClampsBeadCount(t *testing.T) {
	d := Distributed{Params: Params{PreferredWidth: 400}}
	r := BeadCountClamp{Inner: d, MaxBeads: 4}
	if got := r.clamp(10); got != 4 {
		t.Errorf("clamp(10) = %d, want 4", got)
	}
	if got := r.clamp(0); got != 1 {
		t.Errorf("clamp(0) = %d, want 1", got)
	}
}

func TestRedistributeBiasesConvexSlackOutward(t *testing.T) {
	d := Distributed{Params: Params{MinWidth: 100, MaxWidth: 1000, PreferredWidth: 400}}
	r := Redistribute{Inner: d}
	// 1000/3 = 333 per bead (int division), leftover = 1000-999 = 1: a small
	// convex slack that should land on the outermost (index 0) bead.
	b := r.Compute(1000, 3)
	if b.LeftOverWidth != 0 {
		t.Errorf("Redistribute should absorb all leftover, got %d", b.LeftOverWidth)
	}
	if b.Beads[0].Width != 334 {
		t.Errorf("expected convex slack on outer bead, got widths %v", b.Beads)
	}
	for _, bead := range b.Beads[1:] {
		if bead.Width != 333 {
			t.Errorf("expected inner beads unchanged at 333, got %v", b.Beads)
		}
	}
}

func TestRedistributePullsConcaveDeficitInward(t *testing.T) {
	// MinWidth forces each bead above its even share, producing a negative
	// leftover (a concave pinch): the deficit should land on the innermost
	// bead, protecting the outer (visible) bead's width.
	d := Distributed{Params: Params{MinWidth: 350, MaxWidth: 1000, PreferredWidth: 400}}
	r := Redistribute{Inner: d}
	b := r.Compute(1000, 3) // even share 333 < MinWidth 350, so each bead clamps to 350
	if b.LeftOverWidth != 0 {
		t.Errorf("Redistribute should absorb all leftover, got %d", b.LeftOverWidth)
	}
	if b.Beads[len(b.Beads)-1].Width >= b.Beads[0].Width {
		t.Errorf("expected concave deficit concentrated inward, got widths %v", b.Beads)
	}
}
