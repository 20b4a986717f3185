package table

import (
	"sync/atomic"

	errs "github.com/matzehuels/colfit/pkg/errors"
)

// CellFunc produces the data for one cell. It replaces the stored row data
// and may fail, in which case the whole computation fails.
type CellFunc func(r *Row, cl *Column) (string, error)

// Table is the unit the engine computes widths for.
type Table struct {
	TermWidth   int      // target display width, 0 for unconstrained
	Separator   string   // printed between visible columns
	Interactive bool     // widths are fitted to TermWidth
	MaxOut      bool     // widen columns until TermWidth is consumed
	NoWrap      bool     // hide or cut trailing columns instead of overflowing
	Symbols     Symbols  // tree and group glyphs
	Measurer    Measurer // display width of text
	CellFunc    CellFunc // optional cell data override

	// GroupLanes is the maximum number of groups open at once: 0 without
	// groups, else one more than the largest Group.NOverlaps, since a group
	// overlapping n others shares the screen with them. A lone group needs
	// one lane although its NOverlaps is 0. It is rewritten by every
	// computation.
	GroupLanes int

	columns []*Column
	rows    []*Row
	groups  []*Group
	busy    atomic.Bool
}

// New returns an empty table with a single-space separator, UTF-8 symbols
// and the RuneWidth measurer.
func New() *Table {
	return &Table{
		Separator: " ",
		Symbols:   DefaultSymbols,
		Measurer:  RuneWidth,
	}
}

// NewColumn appends a column.
func (tb *Table) NewColumn(name string, hint Hint, flags Flags) *Column {
	cl := &Column{Name: name, Hint: hint, Flags: flags, seq: len(tb.columns), table: tb}
	tb.columns = append(tb.columns, cl)
	return cl
}

// NewRow appends a row under parent, or as a root when parent is nil.
func (tb *Table) NewRow(parent *Row) *Row {
	r := &Row{parent: parent, table: tb}
	if parent != nil {
		parent.children = append(parent.children, r)
	}
	tb.rows = append(tb.rows, r)
	return r
}

// NewGroup appends an empty group.
func (tb *Table) NewGroup(name string) *Group {
	g := &Group{Name: name}
	tb.groups = append(tb.groups, g)
	return g
}

// Columns returns every column, hidden ones included, left to right.
func (tb *Table) Columns() []*Column { return tb.columns }

// Column returns the column named name, or nil.
func (tb *Table) Column(name string) *Column {
	for _, cl := range tb.columns {
		if cl.Name == name {
			return cl
		}
	}
	return nil
}

// VisibleColumns returns the columns that are not hidden, left to right.
func (tb *Table) VisibleColumns() []*Column {
	out := make([]*Column, 0, len(tb.columns))
	for _, cl := range tb.columns {
		if !cl.IsHidden() {
			out = append(out, cl)
		}
	}
	return out
}

// IsLastColumn reports whether no visible column follows cl.
func (tb *Table) IsLastColumn(cl *Column) bool {
	for _, next := range tb.columns[cl.seq+1:] {
		if !next.IsHidden() {
			return false
		}
	}
	return true
}

// LastVisibleColumn returns the rightmost visible column, or nil.
func (tb *Table) LastVisibleColumn() *Column {
	for i := len(tb.columns) - 1; i >= 0; i-- {
		if !tb.columns[i].IsHidden() {
			return tb.columns[i]
		}
	}
	return nil
}

// TreeColumn returns the first visible tree column, or nil.
func (tb *Table) TreeColumn() *Column {
	for _, cl := range tb.columns {
		if cl.IsTree() && !cl.IsHidden() {
			return cl
		}
	}
	return nil
}

// Rows returns every row in insertion order.
func (tb *Table) Rows() []*Row { return tb.rows }

// Roots returns the rows without a parent in insertion order.
func (tb *Table) Roots() []*Row {
	var out []*Row
	for _, r := range tb.rows {
		if r.parent == nil {
			out = append(out, r)
		}
	}
	return out
}

// Walk visits the forest in tree order: each root, then its descendants
// depth first. It stops early when fn returns false.
func (tb *Table) Walk(fn func(r *Row) bool) {
	var visit func(r *Row) bool
	visit = func(r *Row) bool {
		if !fn(r) {
			return false
		}
		for _, c := range r.children {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	for _, r := range tb.Roots() {
		if !visit(r) {
			return
		}
	}
}

// Groups returns every group in creation order.
func (tb *Table) Groups() []*Group { return tb.groups }

// Width measures s with the table's measurer; malformed text is zero wide.
func (tb *Table) Width(s string) int { return SafeWidth(tb.measurer(), s) }

// SeparatorWidth returns the display width of the column separator.
func (tb *Table) SeparatorWidth() int { return tb.Width(tb.Separator) }

func (tb *Table) measurer() Measurer {
	if tb.Measurer == nil {
		return RuneWidth
	}
	return tb.Measurer
}

// CellToBuffer materializes the cell of r in column cl into buf: tree art
// first for tree columns, then the data.
func (tb *Table) CellToBuffer(r *Row, cl *Column, buf *Buffer) error {
	buf.Reset()
	data := r.Data(cl)
	if tb.CellFunc != nil {
		d, err := tb.CellFunc(r, cl)
		if err != nil {
			return err
		}
		data = d
	}
	if cl.IsTree() {
		buf.WriteArt(tb.Symbols.TreeArt(r))
	}
	buf.WriteString(data)
	return nil
}

// Acquire marks the table as owned by one computation. The returned
// function releases it. A table already owned yields an error.
func (tb *Table) Acquire() (release func(), err error) {
	if !tb.busy.CompareAndSwap(false, true) {
		return nil, errs.New(errs.ErrCodeBusy, "table is already being computed")
	}
	return func() { tb.busy.Store(false) }, nil
}
