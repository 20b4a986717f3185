package layout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/colfit/pkg/errors"
	"github.com/matzehuels/colfit/pkg/observability"
	"github.com/matzehuels/colfit/pkg/table"
)

func newTestTable() *table.Table {
	tb := table.New()
	tb.Measurer = table.NewRuneWidth(false)
	return tb
}

// fill adds one root row per record, one value per column. Values beyond
// the last column are dropped.
func fill(tb *table.Table, records ...[]string) {
	cols := tb.Columns()
	for _, rec := range records {
		r := tb.NewRow(nil)
		for i, v := range rec {
			if i < len(cols) {
				r.SetData(cols[i], v)
			}
		}
	}
}

func quiet() *Calculator {
	return NewCalculator(log.New(io.Discard))
}

type colState struct {
	Width, WidthMin, WidthMax, WidthAvg int
	Extreme, Hidden, Trunc              bool
}

func snapshot(tb *table.Table) map[string]colState {
	out := make(map[string]colState)
	for _, cl := range tb.Columns() {
		out[cl.Name] = colState{
			Width:    cl.Width,
			WidthMin: cl.WidthMin,
			WidthMax: cl.WidthMax,
			WidthAvg: cl.WidthAvg,
			Extreme:  cl.Extreme,
			Hidden:   cl.IsHidden(),
			Trunc:    cl.IsTrunc(),
		}
	}
	return out
}

func widths(tb *table.Table) map[string]int {
	out := make(map[string]int)
	for _, cl := range tb.Columns() {
		out[cl.Name] = cl.Width
	}
	return out
}

func TestCalculateNonInteractive(t *testing.T) {
	tb := newTestTable()
	tb.TermWidth = 5
	tb.NewColumn("A", table.NoHint(), table.FlagTrunc)
	tb.NewColumn("B", table.NoHint(), 0)
	fill(tb, []string{"abc", "x"}, []string{"abcdef", ""})

	res, err := quiet().Calculate(context.Background(), tb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]int{"A": 6, "B": 1}, widths(tb)); diff != "" {
		t.Errorf("widths (-want +got):\n%s", diff)
	}
	if res.Width != 8 || res.Fitted() || res.Overflowed() {
		t.Errorf("result = %+v; natural widths must not be fitted", res)
	}
}

func TestCalculateEnlarge(t *testing.T) {
	tests := []struct {
		name   string
		flagsB table.Flags
		hidden bool // append a hidden column after B
		want   map[string]int
		width  int
	}{
		{name: "last column takes the slack", want: map[string]int{"A": 3, "B": 16}, width: 20},
		{name: "right aligned last column stays", flagsB: table.FlagRight, want: map[string]int{"A": 3, "B": 2}, width: 6},
		{name: "strict last column stays", flagsB: table.FlagStrictWidth, want: map[string]int{"A": 3, "B": 2}, width: 6},
		{name: "hidden trailing column skipped", hidden: true, want: map[string]int{"A": 3, "B": 16, "C": 0}, width: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestTable()
			tb.TermWidth, tb.Interactive = 20, true
			tb.NewColumn("A", table.NoHint(), 0)
			tb.NewColumn("B", table.NoHint(), tt.flagsB)
			if tt.hidden {
				tb.NewColumn("C", table.NoHint(), table.FlagHidden)
			}
			fill(tb, []string{"abc", "de", "ignored"})

			res, err := quiet().Calculate(context.Background(), tb, nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, widths(tb)); diff != "" {
				t.Errorf("widths (-want +got):\n%s", diff)
			}
			if res.Width != tt.width {
				t.Errorf("Width = %d, want %d", res.Width, tt.width)
			}
		})
	}
}

func TestCalculateMaxOutFillsTarget(t *testing.T) {
	tb := newTestTable()
	tb.TermWidth, tb.Interactive, tb.MaxOut = 40, true, true
	tb.NewColumn("A", table.Relative(0.3), table.FlagTrunc)
	tb.NewColumn("B", table.NoHint(), 0)
	tb.NewColumn("C", table.NoHint(), 0)
	fill(tb, []string{"hello world", "x", "something"})

	res, err := quiet().Calculate(context.Background(), tb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]int{"A": 17, "B": 7, "C": 14}, widths(tb)); diff != "" {
		t.Errorf("widths (-want +got):\n%s", diff)
	}

	sum := 0
	for _, cl := range tb.VisibleColumns() {
		sum += cl.Width
		if cl.Width < cl.WidthMin {
			t.Errorf("%s width %d below minimum %d", cl.Name, cl.Width, cl.WidthMin)
		}
	}
	sum += 2 * tb.SeparatorWidth()
	if res.Width != 40 || sum != 40 || res.Target != 40 {
		t.Errorf("Width = %d, sum = %d, Target = %d; want all 40", res.Width, sum, res.Target)
	}
}

func TestCalculateShrinksImpossibleMinimums(t *testing.T) {
	rec := &stageRecorder{}
	observability.SetLayoutHooks(rec)
	t.Cleanup(observability.Reset)

	tb := newTestTable()
	tb.TermWidth, tb.Interactive, tb.MaxOut = 10, true, true
	for _, name := range []string{"AAAAAAAA", "BBBBBBBB", "CCCCCCCC"} {
		tb.NewColumn(name, table.NoHint(), table.FlagTrunc)
	}

	type minmax struct{ Width, Min int }
	want := map[string]minmax{
		"AAAAAAAA": {2, 2},
		"BBBBBBBB": {3, 3},
		"CCCCCCCC": {3, 3},
	}

	// minimums are lowered round-robin from the left until they fit
	for run := 1; run <= 2; run++ {
		rec.stages = nil
		res, err := quiet().Calculate(context.Background(), tb, nil)
		if err != nil {
			t.Fatal(err)
		}
		got := make(map[string]minmax)
		for _, cl := range tb.Columns() {
			got[cl.Name] = minmax{cl.Width, cl.WidthMin}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("run %d: columns (-want +got):\n%s", run, diff)
		}
		if res.Width != 10 || res.MinWidth != 10 || res.Overflowed() {
			t.Errorf("run %d: result = %+v", run, res)
		}
		if diff := cmp.Diff([]string{StageBaseline, StageMinimum, StageReduce}, rec.stages); diff != "" {
			t.Errorf("run %d: stages (-want +got):\n%s", run, diff)
		}
		if w := rec.widths[StageMinimum]; w != 26 {
			t.Errorf("run %d: width after minimum stage = %d, want 26", run, w)
		}
	}
}

func TestCalculateExtremeColumn(t *testing.T) {
	tb := newTestTable()
	tb.TermWidth, tb.Interactive = 20, true
	cl := tb.NewColumn("C", table.NoHint(), table.FlagNoExtremes)
	for _, v := range []string{"aaa", "aaa", "aaa", "aaa", strings.Repeat("a", 40)} {
		fill(tb, []string{v})
	}

	rec := &stageRecorder{}
	observability.SetLayoutHooks(rec)
	t.Cleanup(observability.Reset)

	res, err := quiet().Calculate(context.Background(), tb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.widths[StageExtremes]; got != 3 {
		t.Errorf("width after extremes stage = %d, want 3", got)
	}
	// the extreme column then grows back towards its widest cell
	want := colState{Width: 20, WidthMin: 1, WidthMax: 40, WidthAvg: 3, Extreme: true}
	if diff := cmp.Diff(want, snapshot(tb)["C"]); diff != "" {
		t.Errorf("column C (-want +got):\n%s", diff)
	}
	if res.Extremes != 1 || res.Width != 20 || cl.Width != 20 {
		t.Errorf("result = %+v", res)
	}
}

func TestCalculateReduceStages(t *testing.T) {
	tests := []struct {
		name    string
		target  int
		maxOut  bool
		columns []struct {
			name  string
			hint  table.Hint
			flags table.Flags
		}
		cells []string
		want  map[string]int
	}{
		{
			name:   "relative truncatable columns go first",
			target: 30,
			columns: []struct {
				name  string
				hint  table.Hint
				flags table.Flags
			}{
				{"A", table.Relative(0.25), table.FlagTrunc},
				{"C", table.NoHint(), table.FlagTrunc},
			},
			cells: []string{strings.Repeat("a", 30), strings.Repeat("c", 20)},
			want:  map[string]int{"A": 9, "C": 20},
		},
		{
			name:   "then every truncatable column",
			target: 20,
			columns: []struct {
				name  string
				hint  table.Hint
				flags table.Flags
			}{
				{"A", table.Relative(0.25), table.FlagTrunc},
				{"C", table.NoHint(), table.FlagTrunc},
			},
			cells: []string{strings.Repeat("a", 10), strings.Repeat("c", 30)},
			want:  map[string]int{"A": 1, "C": 18},
		},
		{
			name:   "then relative columns without truncation",
			target: 10,
			maxOut: true,
			columns: []struct {
				name  string
				hint  table.Hint
				flags table.Flags
			}{
				{"A", table.Relative(0.5), 0},
				{"B", table.Relative(0.5), 0},
			},
			cells: []string{strings.Repeat("a", 20), strings.Repeat("b", 20)},
			want:  map[string]int{"A": 4, "B": 5},
		},
		{
			name:   "wrap without chunk size counts as truncatable",
			target: 12,
			columns: []struct {
				name  string
				hint  table.Hint
				flags table.Flags
			}{
				{"A", table.NoHint(), table.FlagWrap},
				{"B", table.NoHint(), 0},
			},
			cells: []string{strings.Repeat("a", 10), "bbbbb"},
			want:  map[string]int{"A": 6, "B": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestTable()
			tb.TermWidth, tb.Interactive, tb.MaxOut = tt.target, true, tt.maxOut
			for _, c := range tt.columns {
				tb.NewColumn(c.name, c.hint, c.flags)
			}
			fill(tb, tt.cells)

			res, err := quiet().Calculate(context.Background(), tb, nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, widths(tb)); diff != "" {
				t.Errorf("widths (-want +got):\n%s", diff)
			}
			if res.Width != tt.target || res.Overflowed() {
				t.Errorf("Width = %d, Overflow = %d; want %d, 0", res.Width, res.Overflow, tt.target)
			}
		})
	}
}

func TestCalculateHidesColumnsReducedToZero(t *testing.T) {
	tb := newTestTable()
	tb.TermWidth, tb.Interactive, tb.MaxOut = 5, true, true
	for _, name := range []string{"AAAA", "BBBB", "CCCC", "DDDD"} {
		tb.NewColumn(name, table.NoHint(), table.FlagTrunc)
	}
	fill(tb, []string{"x", "x", "x", "x"})

	res, err := quiet().Calculate(context.Background(), tb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !tb.Column("AAAA").IsHidden() {
		t.Error("AAAA should be hidden after reaching zero width")
	}
	if diff := cmp.Diff(map[string]int{"AAAA": 0, "BBBB": 1, "CCCC": 1, "DDDD": 1}, widths(tb)); diff != "" {
		t.Errorf("widths (-want +got):\n%s", diff)
	}
	if res.Width != 5 {
		t.Errorf("Width = %d, want 5 with the hidden column's separator dropped", res.Width)
	}
}

func TestCalculateTreeColumnKeepsArt(t *testing.T) {
	tb := newTestTable()
	tb.TermWidth, tb.Interactive = 12, true
	name := tb.NewColumn("N", table.NoHint(), table.FlagTree|table.FlagTrunc)
	other := tb.NewColumn("X", table.NoHint(), 0)
	a := tb.NewRow(nil)
	a.SetData(name, "a")
	b := tb.NewRow(a)
	b.SetData(name, "b")
	c := tb.NewRow(b)
	c.SetData(name, "c")
	c.SetData(other, strings.Repeat("x", 10))

	res, err := quiet().Calculate(context.Background(), tb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if name.Width != 4 || name.TreeArtWidth != 4 {
		t.Errorf("tree width = %d, art = %d; want 4, 4", name.Width, name.TreeArtWidth)
	}
	if res.Overflow != 3 || !res.Overflowed() {
		t.Errorf("Overflow = %d, want 3", res.Overflow)
	}
}

func TestCalculateNoWrap(t *testing.T) {
	tests := []struct {
		name     string
		noWrap   bool
		want     map[string]int
		overflow int
	}{
		{name: "trailing columns hidden or cut", noWrap: true, want: map[string]int{"A": 6, "B": 3, "C": 6}},
		{name: "overflow reported", noWrap: false, want: map[string]int{"A": 6, "B": 6, "C": 6}, overflow: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestTable()
			tb.TermWidth, tb.Interactive, tb.NoWrap = 10, true, tt.noWrap
			for _, n := range []string{"A", "B", "C"} {
				tb.NewColumn(n, table.NoHint(), 0)
			}
			fill(tb, []string{"aaaaaa", "bbbbbb", "cccccc"})

			res, err := quiet().Calculate(context.Background(), tb, nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, widths(tb)); diff != "" {
				t.Errorf("widths (-want +got):\n%s", diff)
			}
			if res.Overflow != tt.overflow {
				t.Errorf("Overflow = %d, want %d", res.Overflow, tt.overflow)
			}
			if tt.noWrap {
				if !tb.Column("C").IsHidden() || !tb.Column("B").IsFitTruncated() {
					t.Error("want C hidden and B cut to fit")
				}
				if res.Width != 10 {
					t.Errorf("Width = %d, want 10", res.Width)
				}
			}
		})
	}
}

func TestCalculateIdempotent(t *testing.T) {
	tb := newTestTable()
	tb.TermWidth, tb.Interactive, tb.MaxOut, tb.NoWrap = 30, true, true, true
	tb.NewColumn("NAME", table.Relative(0.2), table.FlagTree)
	tb.NewColumn("SIZE", table.Absolute(6), table.FlagRight)
	tb.NewColumn("PATH", table.NoHint(), table.FlagNoExtremes|table.FlagTrunc)
	tb.NewColumn("LABEL", table.Relative(0.3), table.FlagTrunc)
	for i := range 6 {
		path := "/dev/disk"
		if i == 5 {
			path = strings.Repeat("/very/long/path", 5)
		}
		fill(tb, []string{"disk", "10G", path, "data volume"})
	}

	calc := quiet()
	first, err := calc.Calculate(context.Background(), tb, nil)
	if err != nil {
		t.Fatal(err)
	}
	before := snapshot(tb)

	second, err := calc.Calculate(context.Background(), tb, table.NewBuffer())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("result changed between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, snapshot(tb)); diff != "" {
		t.Errorf("columns changed between runs (-first +second):\n%s", diff)
	}
}

func TestCalculateGroupLanes(t *testing.T) {
	tb := newTestTable()
	tb.NewColumn("A", table.NoHint(), 0)
	r1 := tb.NewRow(nil)
	r2 := tb.NewRow(r1)
	r3 := tb.NewRow(r2)
	g1, g2 := tb.NewGroup("g1"), tb.NewGroup("g2")
	mustAdd(t, g1.Add(r1))
	mustAdd(t, g2.Add(r2))
	mustAdd(t, g1.Close(r3))

	res, err := quiet().Calculate(context.Background(), tb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.GroupLanes != 2 || tb.GroupLanes != 2 {
		t.Errorf("GroupLanes = %d (table %d), want 2", res.GroupLanes, tb.GroupLanes)
	}
}

func TestCalculateErrors(t *testing.T) {
	t.Run("cell function failure", func(t *testing.T) {
		tb := newTestTable()
		tb.NewColumn("A", table.NoHint(), 0)
		fill(tb, []string{"x"})
		boom := errors.New("no such device")
		tb.CellFunc = func(*table.Row, *table.Column) (string, error) { return "", boom }

		_, err := quiet().Calculate(context.Background(), tb, nil)
		if !errs.Is(err, errs.ErrCodeMeasure) {
			t.Errorf("err = %v, want MEASURE_FAILED", err)
		}
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want cause preserved", err)
		}
	})

	t.Run("table busy", func(t *testing.T) {
		tb := newTestTable()
		release, err := tb.Acquire()
		if err != nil {
			t.Fatal(err)
		}
		defer release()

		if _, err := quiet().Calculate(context.Background(), tb, nil); !errs.Is(err, errs.ErrCodeBusy) {
			t.Errorf("err = %v, want TABLE_BUSY", err)
		}
	})
}

func TestCalculateHooks(t *testing.T) {
	rec := &stageRecorder{}
	observability.SetLayoutHooks(rec)
	t.Cleanup(observability.Reset)

	tb := newTestTable()
	tb.TermWidth, tb.Interactive = 20, true
	tb.NewColumn("A", table.NoHint(), 0)
	fill(tb, []string{"abc"}, []string{"de"})

	if _, err := Calculate(context.Background(), tb, nil); err != nil {
		t.Fatal(err)
	}
	if rec.columns != 1 || rec.rows != 2 {
		t.Errorf("start = %d columns, %d rows", rec.columns, rec.rows)
	}
	if diff := cmp.Diff([]string{StageBaseline, StageEnlarge, StageReduce}, rec.stages); diff != "" {
		t.Errorf("stages (-want +got):\n%s", diff)
	}
	if !rec.completed || rec.width != 20 || rec.err != nil {
		t.Errorf("complete = %v width = %d err = %v", rec.completed, rec.width, rec.err)
	}
}

type stageRecorder struct {
	columns, rows int
	stages        []string
	widths        map[string]int
	completed     bool
	width         int
	err           error
}

func (r *stageRecorder) OnCalculateStart(_ context.Context, columns, rows int) {
	r.columns, r.rows = columns, rows
}

func (r *stageRecorder) OnStage(_ context.Context, stage string, width, _ int) {
	if r.widths == nil {
		r.widths = make(map[string]int)
	}
	r.stages = append(r.stages, stage)
	r.widths[stage] = width
}

func (r *stageRecorder) OnCalculateComplete(_ context.Context, width, _ int, _ time.Duration, err error) {
	r.completed, r.width, r.err = true, width, err
}
