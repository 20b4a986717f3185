package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/matzehuels/colfit/pkg/table"
)

// Option configures a render.
type Option func(*printer)

type printer struct {
	header bool
	tail   string
}

// WithoutHeader omits the header line.
func WithoutHeader() Option { return func(p *printer) { p.header = false } }

// WithTail appends tail to every truncated cell, within the column width.
func WithTail(tail string) Option { return func(p *printer) { p.tail = tail } }

func newPrinter(opts ...Option) printer {
	p := printer{header: true}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Render lays out tb as text, one line per output line, each ending in a
// newline. Trailing blanks are trimmed.
func Render(tb *table.Table, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Fprint(&sb, tb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Fprint writes the rendering of tb to w.
func Fprint(w io.Writer, tb *table.Table, opts ...Option) error {
	p := newPrinter(opts...)
	cols := printable(tb)
	lanes, gutter := laneArt(tb)
	buf := table.NewBuffer()

	if p.header {
		if err := p.writeLines(w, tb, cols, blankGutter(gutter), [][]string{p.headerCells(cols)}); err != nil {
			return err
		}
	}

	var err error
	tb.Walk(func(r *table.Row) bool {
		cells := make([][]string, len(cols))
		for i, cl := range cols {
			if err = tb.CellToBuffer(r, cl, buf); err != nil {
				return false
			}
			cells[i] = p.layoutCell(cl, buf.String())
		}
		err = p.writeLines(w, tb, cols, lanes[r], transpose(cells))
		return err == nil
	})
	return err
}

// printable returns the visible columns that take up space.
func printable(tb *table.Table) []*table.Column {
	var out []*table.Column
	for _, cl := range tb.VisibleColumns() {
		if cl.Width > 0 {
			out = append(out, cl)
		}
	}
	return out
}

// headerCells cuts every header to its column, whatever the column flags.
func (p printer) headerCells(cols []*table.Column) []string {
	out := make([]string, len(cols))
	for i, cl := range cols {
		out[i] = p.cut(cl.Name, cl.Width)
	}
	return out
}

// layoutCell breaks data into the lines it occupies in cl.
func (p printer) layoutCell(cl *table.Column, data string) []string {
	if runewidth.StringWidth(data) <= cl.Width {
		return []string{data}
	}
	switch {
	case cl.IsFitTruncated(), cl.IsTrunc():
		return []string{p.cut(data, cl.Width)}
	case cl.IsWrap():
		return strings.Split(wrap.String(wordwrap.String(data, cl.Width), cl.Width), "\n")
	}
	return []string{data}
}

func (p printer) cut(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if p.tail == "" {
		return truncate.String(s, uint(width))
	}
	return truncate.StringWithTail(s, uint(width), p.tail)
}

// transpose turns per-column line lists into rows of cells, padding short
// columns with empty cells.
func transpose(cells [][]string) [][]string {
	height := 1
	for _, c := range cells {
		height = max(height, len(c))
	}
	lines := make([][]string, height)
	for i := range lines {
		lines[i] = make([]string, len(cells))
		for j, c := range cells {
			if i < len(c) {
				lines[i][j] = c[i]
			}
		}
	}
	return lines
}

func (p printer) writeLines(w io.Writer, tb *table.Table, cols []*table.Column, gutter string, lines [][]string) error {
	for n, line := range lines {
		var sb strings.Builder
		if gutter != "" {
			if n == 0 {
				sb.WriteString(gutter)
			} else {
				sb.WriteString(continuation(tb, gutter))
			}
			sb.WriteString(" ")
		}
		for i, cl := range cols {
			if i > 0 {
				sb.WriteString(tb.Separator)
			}
			if cl.IsRight() {
				sb.WriteString(runewidth.FillLeft(line[i], cl.Width))
			} else {
				sb.WriteString(runewidth.FillRight(line[i], cl.Width))
			}
		}
		if _, err := io.WriteString(w, strings.TrimRight(sb.String(), " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
