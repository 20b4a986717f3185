// Package render prints a table whose widths were computed by
// [layout.Calculate].
//
// Every visible column is laid out into exactly its computed width. Cells
// that do not fit are cut (truncatable and fit-truncated columns) or broken
// into several lines (wrap columns); right-aligned columns are padded on the
// left. Other cells are printed in full and push later columns right, as a
// terminal table without truncation would.
//
// Tables with groups get a gutter of group lanes in front of the first
// column. Its width is [GutterWidth]; callers that fit to a terminal should
// subtract it from the target before computing.
//
//	res, err := layout.Calculate(ctx, tb, nil)
//	if err != nil {
//	    return err
//	}
//	err = render.Fprint(os.Stdout, tb, render.WithTail("…"))
//
// [layout.Calculate]: github.com/matzehuels/colfit/pkg/layout.Calculate
package render
