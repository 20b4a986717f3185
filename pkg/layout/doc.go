// Package layout computes the on-screen width of every column of a
// [table.Table] and the number of group lanes its rows need.
//
// # Overview
//
// A computation runs in a fixed sequence of stages:
//
//  1. Group sizing: count, for every group, how many other groups interleave
//     with it in tree order, and derive the table's lane count.
//  2. Baseline: estimate a natural width per visible column from its header,
//     hint and every cell.
//  3. Fitting, for interactive tables with a target width only: shrink
//     impossible minimums, re-estimate columns with outlier cells, enlarge
//     toward the target, then reduce in three prioritized stages and, for
//     no-wrap tables, hide or cut trailing columns.
//
// Every stage is idempotent once its precondition no longer holds, and every
// computation starts from the table's configuration alone, so calling
// [Calculate] twice on an unchanged table yields identical widths.
//
// # Usage
//
//	res, err := layout.Calculate(ctx, tb, table.NewBuffer())
//	if err != nil {
//	    // widths are in an undefined state
//	}
//	if res.Overflowed() {
//	    // the table is wider than tb.TermWidth
//	}
//
// # Errors
//
// The only failure is a cell that cannot be materialized ([table.CellFunc]
// returned an error). It aborts the computation and is reported with code
// [errors.ErrCodeMeasure]. Malformed text, empty columns and targets that
// cannot be met are policy outcomes, not errors.
//
// # Concurrency
//
// A computation is synchronous and takes exclusive ownership of the table
// for its duration. Mutating the table from another goroutine meanwhile is
// undefined; computing the same table concurrently is rejected.
//
// [errors.ErrCodeMeasure]: github.com/matzehuels/colfit/pkg/errors.ErrCodeMeasure
package layout
