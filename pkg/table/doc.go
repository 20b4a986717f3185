// Package table holds the data model consumed by the width engine in
// [github.com/matzehuels/colfit/pkg/layout].
//
// # Overview
//
// A [Table] is an ordered list of [Column] values, a forest of [Row] values
// and a set of [Group] values. Columns carry caller-owned configuration
// (header, [Hint], [Flags], explicit minimum, optional chunk-size function)
// next to the fields the engine computes on every cycle (Width, WidthMin,
// WidthMax, WidthAvg, Extreme, TreeArtWidth).
//
// Rows are created through the table so that every row is reachable both in
// insertion order ([Table.Rows]) and as a tree ([Table.Roots], [Row.Children]):
//
//	tb := table.New()
//	name := tb.NewColumn("NAME", table.NoHint(), table.FlagTree)
//	size := tb.NewColumn("SIZE", table.Absolute(6), table.FlagRight)
//
//	sda := tb.NewRow(nil)
//	sda.SetData(name, "sda")
//	sda.SetData(size, "931.5G")
//
//	part := tb.NewRow(sda)
//	part.SetData(name, "sda1")
//
// # Hints
//
// A [Hint] is a tagged value: [Relative] is a fraction of the target width,
// [Absolute] is a character count. [ParseHint] maps the legacy single-number
// encoding (below one means relative) onto the tagged form.
//
// # Groups
//
// A [Group] is a bracketed run of rows independent of the parent/child
// structure. A row belongs to at most one group. [Group.Close] marks the row
// that ends the group's span; until then the span stays open to the end of
// the table.
//
// # Measurement
//
// Display widths come from a [Measurer]. [RuneWidth] is the default and uses
// go-runewidth; [ANSIWidth] ignores terminal escape sequences; [NewCachedMeasurer]
// memoizes another measurer. A negative width reports malformed text.
//
// # Concurrency
//
// A Table is not safe for concurrent mutation. The engine takes exclusive
// ownership of a table for the duration of one computation via [Table.Acquire].
package table
