package table

// ChunkSizeFunc returns the width of the widest chunk a custom wrapping
// function would cut data into.
type ChunkSizeFunc func(cl *Column, data string) int

// Column is one output column. The exported configuration fields belong to
// the caller; the computed fields below them are rewritten by every
// computation and are authoritative for printers only after it succeeds.
type Column struct {
	Name      string        // header text, may be empty
	Hint      Hint          // width hint
	Flags     Flags         // capabilities
	MinWidth  int           // explicit floor, replaces the derived one when set
	ChunkSize ChunkSizeFunc // custom wrapping, nil for none

	Width        int  // final width
	WidthMin     int  // floor used while fitting
	WidthMax     int  // widest cell seen
	WidthAvg     int  // mean width of non-outlier cells
	Extreme      bool // outlier cells were seen
	TreeArtWidth int  // widest branch art, tree columns only

	seq        int
	table      *Table
	autoHidden bool
	fitTrunc   bool
}

// Seq returns the index of the column in its table.
func (cl *Column) Seq() int { return cl.seq }

// Table returns the table that owns the column.
func (cl *Column) Table() *Table { return cl.table }

// IsHidden reports whether the column is hidden, either by configuration or
// by the last computation.
func (cl *Column) IsHidden() bool { return cl.Flags.Has(FlagHidden) || cl.autoHidden }

// IsTrunc reports whether the column may be truncated. A column cut by a
// forced fit is always truncatable.
func (cl *Column) IsTrunc() bool { return cl.Flags.Has(FlagTrunc) || cl.fitTrunc }

func (cl *Column) IsWrap() bool        { return cl.Flags.Has(FlagWrap) }
func (cl *Column) IsCustomWrap() bool  { return cl.Flags.Has(FlagWrap) && cl.ChunkSize != nil }
func (cl *Column) IsTree() bool        { return cl.Flags.Has(FlagTree) }
func (cl *Column) IsRight() bool       { return cl.Flags.Has(FlagRight) }
func (cl *Column) IsStrictWidth() bool { return cl.Flags.Has(FlagStrictWidth) }
func (cl *Column) IsNoExtremes() bool  { return cl.Flags.Has(FlagNoExtremes) }

// IsFitTruncated reports whether the last computation cut the column to make
// the table fit without wrapping.
func (cl *Column) IsFitTruncated() bool { return cl.fitTrunc }

// ResetComputed clears every computed field so the next computation starts
// from configuration alone.
func (cl *Column) ResetComputed() {
	cl.Width = 0
	cl.WidthMin = cl.MinWidth
	cl.WidthMax = 0
	cl.WidthAvg = 0
	cl.Extreme = false
	cl.TreeArtWidth = 0
	cl.autoHidden = false
	cl.fitTrunc = false
}

// MarkHidden hides the column until the next [Column.ResetComputed].
func (cl *Column) MarkHidden() { cl.autoHidden = true }

// MarkFitTruncated flags the column as cut by a forced fit until the next
// [Column.ResetComputed].
func (cl *Column) MarkFitTruncated() { cl.fitTrunc = true }
