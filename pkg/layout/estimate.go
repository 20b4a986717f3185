package layout

import (
	errs "github.com/matzehuels/colfit/pkg/errors"
	"github.com/matzehuels/colfit/pkg/table"
)

// prior is what an earlier scan of the same column already established.
// The zero value means nothing is known yet.
type prior struct {
	widthMin int  // 0 when the floor is not established
	widthAvg int  // 0 when the average is unknown
	extreme  bool // outliers were seen
}

// estimate is the outcome of scanning one column.
type estimate struct {
	width    int
	widthMin int
	widthMax int
	widthAvg int
	treeArt  int
	extreme  bool
}

func (e estimate) apply(cl *table.Column) {
	cl.Width = e.width
	cl.WidthMin = e.widthMin
	cl.WidthMax = e.widthMax
	cl.WidthAvg = e.widthAvg
	cl.TreeArtWidth = e.treeArt
	cl.Extreme = e.extreme
}

// priorOf returns what cl's computed fields already establish.
func priorOf(cl *table.Column) prior {
	return prior{widthMin: cl.WidthMin, widthAvg: cl.WidthAvg, extreme: cl.Extreme}
}

// estimateColumn scans every row for cl and derives its natural width. With
// a known average from p, cells wider than twice the average are left out of
// the natural width from the start.
func estimateColumn(tb *table.Table, cl *table.Column, buf *table.Buffer, p prior) (estimate, error) {
	est := estimate{widthMin: p.widthMin, widthAvg: p.widthAvg, extreme: p.extreme}
	noHeader := false

	if est.widthMin == 0 {
		if cl.Hint.IsRelative() && tb.MaxOut && tb.Interactive {
			est.widthMin = cl.Hint.Of(tb.TermWidth)
			if est.widthMin > 0 && !tb.IsLastColumn(cl) {
				est.widthMin-- // room for the separator
			}
		}
		if cl.Name != "" {
			est.widthMin = max(est.widthMin, tb.Width(cl.Name))
		} else {
			noHeader = true
		}
		if est.widthMin == 0 {
			est.widthMin = 1
		}
	}

	var eligible []int
	for i, r := range tb.Rows() {
		if err := tb.CellToBuffer(r, cl, buf); err != nil {
			return est, errs.Wrap(errs.ErrCodeMeasure, err, "column %q row %d", cl.Name, i)
		}
		n := cellWidth(tb, cl, buf)
		est.widthMax = max(est.widthMax, n)

		if est.extreme && est.widthAvg > 0 && n > 2*est.widthAvg {
			continue
		}
		if cl.IsNoExtremes() {
			eligible = append(eligible, n)
		}
		est.width = max(est.width, n)
		if cl.IsTree() {
			est.treeArt = max(est.treeArt, tb.Width(buf.Art()))
		}
	}

	if len(eligible) > 0 && est.widthAvg == 0 {
		est.widthAvg, est.extreme = averageWidth(eligible, est.widthMax)
	}

	if est.width < est.widthMin && !cl.IsStrictWidth() {
		est.width = est.widthMin
	} else if cl.Hint.IsAbsolute() && est.width < cl.Hint.Count() && est.widthMin < cl.Hint.Count() {
		est.width = cl.Hint.Count()
	}

	// a column without header and data takes no space at all
	if est.widthMax == 0 && noHeader && est.widthMin == 1 && est.width <= 1 {
		est.width, est.widthMin = 0, 0
	}
	return est, nil
}

func cellWidth(tb *table.Table, cl *table.Column, buf *table.Buffer) int {
	if buf.Len() == 0 {
		return 0
	}
	data := buf.String()
	if cl.IsCustomWrap() {
		return max(cl.ChunkSize(cl, data), 0)
	}
	return tb.Width(data)
}

// averageWidth returns the mean of widths and whether widest makes the
// column extreme. For an extreme column the mean is refined to the cells no
// wider than twice the overall mean.
func averageWidth(widths []int, widest int) (int, bool) {
	sum := 0
	for _, w := range widths {
		sum += w
	}
	avg := sum / len(widths)
	if avg == 0 || widest <= 2*avg {
		return avg, false
	}
	sum, n := 0, 0
	for _, w := range widths {
		if w <= 2*avg {
			sum += w
			n++
		}
	}
	if n > 0 && sum/n > 0 {
		avg = sum / n
	}
	return avg, true
}
