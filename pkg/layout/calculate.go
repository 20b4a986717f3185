package layout

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/colfit/pkg/observability"
	"github.com/matzehuels/colfit/pkg/table"
)

// Stage names reported to [observability.LayoutHooks].
const (
	StageGroups   = "groups"
	StageBaseline = "baseline"
	StageMinimum  = "minimum"
	StageExtremes = "extremes"
	StageEnlarge  = "enlarge"
	StageReduce   = "reduce"
	StageForceFit = "forcefit"
)

// Calculator computes column widths. The zero value is ready to use and logs
// to log.Default().
type Calculator struct {
	Logger *log.Logger
}

// NewCalculator returns a calculator that logs stage decisions at debug
// level to logger. A nil logger means log.Default().
func NewCalculator(logger *log.Logger) *Calculator {
	return &Calculator{Logger: logger}
}

// Calculate computes widths with a default [Calculator].
func Calculate(ctx context.Context, tb *table.Table, buf *table.Buffer) (Result, error) {
	return (&Calculator{}).Calculate(ctx, tb, buf)
}

// Calculate recomputes every column's width fields, every group's NOverlaps
// and tb.GroupLanes. buf is scratch space for one cell at a time; nil
// allocates one. ctx only carries values to hooks: the computation is bounded
// and is not cancelled.
//
// On error the width fields are in an undefined partial state until the next
// successful call.
func (c *Calculator) Calculate(ctx context.Context, tb *table.Table, buf *table.Buffer) (res Result, err error) {
	release, err := tb.Acquire()
	if err != nil {
		return Result{}, err
	}
	defer release()

	if buf == nil {
		buf = table.NewBuffer()
	}
	hooks := observability.Layout()
	start := time.Now()
	hooks.OnCalculateStart(ctx, len(tb.Columns()), len(tb.Rows()))
	defer func() {
		hooks.OnCalculateComplete(ctx, res.Width, res.Overflow, time.Since(start), err)
	}()

	s := &calc{
		ctx:    ctx,
		tb:     tb,
		buf:    buf,
		logger: c.logger(),
		hooks:  hooks,
		target: tb.TermWidth,
		sep:    tb.SeparatorWidth(),
	}
	s.logger.Debug("recounting widths", "termwidth", tb.TermWidth)

	err = s.run()
	res = Result{
		Width:      s.width,
		MinWidth:   s.widthMin,
		GroupLanes: tb.GroupLanes,
		Extremes:   s.extremes,
	}
	if s.fitted {
		res.Target = s.target
		res.Overflow = max(s.width-s.target, 0)
	}
	s.logger.Debug("final width", "width", s.width, "overflow", res.Overflow, "err", err)
	if err == nil {
		s.dumpColumns()
	}
	return res, err
}

func (c *Calculator) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// calc is the state of one computation.
type calc struct {
	ctx    context.Context
	tb     *table.Table
	buf    *table.Buffer
	logger *log.Logger
	hooks  observability.LayoutHooks

	target   int
	sep      int
	width    int // visible widths plus separators
	widthMin int // visible minimums plus separators
	extremes int // columns still counted as extreme
	fitted   bool
}

func (s *calc) run() error {
	for _, cl := range s.tb.Columns() {
		cl.ResetComputed()
	}

	s.tb.GroupLanes = groupLanes(s.tb)
	s.logger.Debug("group lanes", "lanes", s.tb.GroupLanes)

	if err := s.baseline(); err != nil {
		return err
	}
	if !s.tb.Interactive || s.target <= 0 {
		s.logger.Debug("non-terminal output")
		return nil
	}
	s.fitted = true

	s.shrinkMinimums()
	if err := s.shrinkExtremes(); err != nil {
		return err
	}
	s.enlarge()
	s.reduce()
	s.forceFit()
	return nil
}

// baseline estimates every visible column and sums the result.
func (s *calc) baseline() error {
	for _, cl := range s.tb.VisibleColumns() {
		est, err := estimateColumn(s.tb, cl, s.buf, priorOf(cl))
		if err != nil {
			return err
		}
		est.apply(cl)
		if cl.Extreme {
			s.extremes++
		}
	}
	s.width, s.widthMin = s.totals()
	s.stage(StageBaseline)
	return nil
}

// totals sums visible widths and minimums, one separator per non-last
// visible column.
func (s *calc) totals() (width, widthMin int) {
	cols := s.tb.VisibleColumns()
	for i, cl := range cols {
		width += cl.Width
		widthMin += cl.WidthMin
		if i < len(cols)-1 {
			width += s.sep
			widthMin += s.sep
		}
	}
	return width, widthMin
}

// shrinkMinimums lowers minimums round-robin when they cannot fit and the
// table is to be filled to the target anyway.
func (s *calc) shrinkMinimums() {
	if s.widthMin <= s.target || !s.tb.MaxOut {
		return
	}
	s.logger.Debug("min width larger than terminal", "width", s.widthMin, "term", s.target)
	for s.widthMin > s.target {
		shrunk := false
		for _, cl := range s.tb.VisibleColumns() {
			if s.widthMin <= s.target {
				break
			}
			if cl.WidthMin == 0 {
				continue
			}
			cl.WidthMin--
			s.widthMin--
			shrunk = true
		}
		if !shrunk {
			break
		}
	}
	s.logger.Debug("min width reduced", "width", s.widthMin)
	s.stage(StageMinimum)
}

// shrinkExtremes re-estimates extreme columns now that their average is
// known, leaving the outliers out.
func (s *calc) shrinkExtremes() error {
	if s.width <= s.target || s.extremes == 0 {
		return nil
	}
	s.logger.Debug("reduce width (extreme columns)")
	for _, cl := range s.tb.VisibleColumns() {
		if !cl.Extreme {
			continue
		}
		orig := cl.Width
		est, err := estimateColumn(s.tb, cl, s.buf, priorOf(cl))
		if err != nil {
			return err
		}
		est.apply(cl)
		if orig > cl.Width {
			s.width -= orig - cl.Width
		} else {
			s.extremes--
		}
	}
	s.stage(StageExtremes)
	return nil
}

// enlarge hands out the shortfall: extreme columns first up to their widest
// cell, then round-robin when maxing out, else to the last column.
func (s *calc) enlarge() {
	if s.width >= s.target {
		return
	}
	visible := s.tb.VisibleColumns()

	if s.extremes > 0 {
		s.logger.Debug("enlarge width (extreme columns)")
		for _, cl := range visible {
			if !cl.Extreme || cl.IsStrictWidth() {
				continue
			}
			add := min(s.target-s.width, max(cl.WidthMax-cl.Width, 0))
			cl.Width += add
			s.width += add
			if s.width == s.target {
				break
			}
		}
	}

	switch {
	case s.width < s.target && s.tb.MaxOut:
		s.logger.Debug("enlarge width (max-out)")
		for s.width < s.target {
			grown := false
			for _, cl := range visible {
				if cl.IsStrictWidth() {
					continue
				}
				cl.Width++
				s.width++
				grown = true
				if s.width == s.target {
					break
				}
			}
			if !grown {
				break
			}
		}
	case s.width < s.target:
		last := s.tb.LastVisibleColumn()
		s.logger.Debug("enlarge width (last column)")
		if last != nil && !last.IsRight() && !last.IsStrictWidth() {
			last.Width += s.target - s.width
			s.width = s.target
		}
	}
	s.stage(StageEnlarge)
}

// reduce narrows columns one cell at a time in three stages:
//
//  1. truncatable columns with a relative hint wider than the hint
//  2. all truncatable columns
//  3. columns with a relative hint, truncatable or not
//
// A wrap column without a chunk-size function counts as truncatable.
func (s *calc) reduce() {
	for stage := 1; s.width > s.target && stage <= 3; {
		before := s.width
		s.logger.Debug("reduce width", "stage", stage, "current", s.width, "wanted", s.target)

		for _, cl := range s.tb.Columns() {
			if cl.IsHidden() {
				continue
			}
			if s.width <= s.target {
				break
			}
			if cl.Width <= cl.WidthMin {
				continue
			}
			if cl.IsTree() && cl.Width <= cl.TreeArtWidth {
				continue
			}
			if cl.Width == 0 || !reducible(stage, cl, s.target) {
				continue
			}
			cl.Width--
			s.width--
			if cl.Width == 0 {
				cl.MarkHidden()
				s.width, s.widthMin = s.totals()
			}
		}
		if before == s.width {
			stage++
		}
	}
	s.stage(StageReduce)
	if s.width > s.target {
		s.logger.Debug("width still exceeds terminal", "width", s.width, "term", s.target)
	}
}

func reducible(stage int, cl *table.Column, target int) bool {
	trunc := cl.IsTrunc() || (cl.IsWrap() && !cl.IsCustomWrap())
	switch stage {
	case 1:
		return trunc && cl.Hint.IsRelative() && cl.Width > cl.Hint.Of(target)
	case 2:
		return trunc
	case 3:
		return cl.Hint.IsRelative()
	}
	return false
}

// forceFit hides trailing columns, or cuts the first one whose removal would
// be enough, so a no-wrap table never overflows.
func (s *calc) forceFit() {
	if !s.tb.NoWrap || s.width <= s.target {
		return
	}
	cols := s.tb.Columns()
	for i := len(cols) - 1; i >= 0; i-- {
		cl := cols[i]
		if cl.IsHidden() {
			continue
		}
		if s.width <= s.target {
			break
		}
		if s.width-cl.Width < s.target {
			r := s.width - s.target
			cl.Width -= r
			cl.MarkFitTruncated()
			s.width -= r
		} else {
			cl.MarkHidden()
			s.width, s.widthMin = s.totals()
		}
	}
	s.stage(StageForceFit)
}

func (s *calc) stage(name string) {
	s.hooks.OnStage(s.ctx, name, s.width, s.target)
}

func (s *calc) dumpColumns() {
	if s.logger.GetLevel() > log.DebugLevel {
		return
	}
	for _, cl := range s.tb.Columns() {
		if cl.IsHidden() {
			s.logger.Debug("column hidden, ignored", "name", cl.Name)
			continue
		}
		s.logger.Debug("column",
			"name", cl.Name,
			"seq", cl.Seq(),
			"width", cl.Width,
			"hint", cl.Hint,
			"avg", cl.WidthAvg,
			"max", cl.WidthMax,
			"min", cl.WidthMin,
			"extreme", cl.Extreme,
			"trunc", cl.IsTrunc())
	}
}
