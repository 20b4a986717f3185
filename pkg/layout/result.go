package layout

// Result summarizes one successful computation.
type Result struct {
	Width      int // visible widths plus separators
	Target     int // the width fitted to, 0 when not fitted
	MinWidth   int // visible minimums plus separators
	GroupLanes int // maximum number of groups open at once
	Extremes   int // columns still counted as extreme after fitting
	Overflow   int // cells beyond Target that could not be removed
}

// Fitted reports whether widths were fitted to a target at all.
func (r Result) Fitted() bool { return r.Target > 0 }

// Overflowed reports whether the table ended up wider than its target.
func (r Result) Overflowed() bool { return r.Overflow > 0 }
