// Package pkg provides the libraries behind colfit, a column-width engine
// for text tables shown on a terminal.
//
// # Overview
//
// colfit decides how wide every column of a table should be: first the
// natural width of its content, then, when the table must fit a target
// width, what to enlarge, truncate, wrap or hide. The pkg directory is
// organized into these areas:
//
//  1. [table] - The table model (columns, rows, groups, hints, flags, widths)
//  2. [layout] - The width computation itself
//  3. [render] - Printing a computed table as aligned text
//  4. [tabfile] - Reading table descriptions from TOML and JSON files
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through colfit:
//
//	table file (.toml / .json)
//	         ↓
//	    [tabfile] package (decode + build)
//	         ↓
//	    [table] package (columns, rows, groups)
//	         ↓
//	    [layout] package (widths + group lanes)
//	         ↓
//	    [render] package (text lines)
//
// # Quick Start
//
//	tb := table.New()
//	name := tb.NewColumn("NAME", table.NoHint(), table.FlagTree)
//	size := tb.NewColumn("SIZE", table.Absolute(5), table.FlagRight)
//
//	disk := tb.NewRow(nil)
//	disk.SetData(name, "sda")
//	disk.SetData(size, "100G")
//
//	tb.TermWidth, tb.Interactive = 40, true
//	if _, err := layout.Calculate(ctx, tb, nil); err != nil {
//	    return err
//	}
//	out, _ := render.Render(tb)
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//	go test -run Example        # Examples only
//
// [table]: https://pkg.go.dev/github.com/matzehuels/colfit/pkg/table
// [layout]: https://pkg.go.dev/github.com/matzehuels/colfit/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/colfit/pkg/render
// [tabfile]: https://pkg.go.dev/github.com/matzehuels/colfit/pkg/tabfile
// [errors]: https://pkg.go.dev/github.com/matzehuels/colfit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/colfit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/colfit/pkg/buildinfo
package pkg
