package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/colfit/pkg/layout"
	"github.com/matzehuels/colfit/pkg/table"
)

// maxConcurrentFits bounds how many table files are computed at once.
const maxConcurrentFits = 8

// fitCommand creates the fit command, which reports computed widths.
func (c *CLI) fitCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fit FILE...",
		Short: "Compute column widths and report them",
		Long: `Compute column widths for one or more table files and report, per column,
the width it was given along with its minimum, widest cell and average.

Files are computed concurrently and reported in the order given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFit(cmd.Context(), cmd.OutOrStdout(), args, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

// fitReport is the outcome for one table file.
type fitReport struct {
	Path       string         `json:"path"`
	Width      int            `json:"width"`
	Target     int            `json:"target,omitempty"`
	MinWidth   int            `json:"min_width"`
	GroupLanes int            `json:"group_lanes"`
	Overflow   int            `json:"overflow,omitempty"`
	Columns    []columnReport `json:"columns"`
}

type columnReport struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Avg      int    `json:"avg"`
	Hint     string `json:"hint"`
	Flags    string `json:"flags,omitempty"`
	Extreme  bool   `json:"extreme,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
	FitTrunc bool   `json:"fit_truncated,omitempty"`
}

func newFitReport(path string, tb *table.Table, res layout.Result) fitReport {
	r := fitReport{
		Path:       path,
		Width:      res.Width,
		Target:     res.Target,
		MinWidth:   res.MinWidth,
		GroupLanes: res.GroupLanes,
		Overflow:   res.Overflow,
	}
	for _, cl := range tb.Columns() {
		r.Columns = append(r.Columns, columnReport{
			Name:     cl.Name,
			Width:    cl.Width,
			Min:      cl.WidthMin,
			Max:      cl.WidthMax,
			Avg:      cl.WidthAvg,
			Hint:     cl.Hint.String(),
			Flags:    cl.Flags.String(),
			Extreme:  cl.Extreme,
			Hidden:   cl.IsHidden(),
			FitTrunc: cl.IsFitTruncated(),
		})
	}
	return r
}

// runFit computes every file concurrently; the first failure cancels the rest.
func (c *CLI) runFit(ctx context.Context, w io.Writer, paths []string, asJSON bool) error {
	logger := loggerFromContext(ctx)
	s, err := c.opts.load()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	reports := make([]fitReport, len(paths))
	calc := layout.NewCalculator(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFits)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tb, err := loadTable(ctx, path, s)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			res, err := calc.Calculate(ctx, tb, nil)
			if err != nil {
				return fmt.Errorf("fit %s: %w", path, err)
			}
			reports[i] = newFitReport(path, tb, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	prog.done("fitted", "tables", len(paths))

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeFitReport(w, r)
	}
	return nil
}

func writeFitReport(w io.Writer, r fitReport) {
	fmt.Fprintln(w, StyleTitle.Render(r.Path))

	rows := make([][]string, len(r.Columns))
	for i, cl := range r.Columns {
		rows[i] = []string{
			cl.Name,
			strconv.Itoa(cl.Width),
			strconv.Itoa(cl.Min),
			strconv.Itoa(cl.Max),
			strconv.Itoa(cl.Avg),
			cl.Hint,
			cl.Flags,
			columnState(cl),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Column", "Width", "Min", "Max", "Avg", "Hint", "Flags", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(r.Columns) {
				return base
			}
			switch {
			case r.Columns[row].Hidden:
				return base.Foreground(colorDim)
			case col == 1:
				return base.Foreground(colorCyan)
			case col == 7 && r.Columns[row].Extreme:
				return base.Foreground(colorYellow)
			}
			return base
		})
	fmt.Fprintln(w, t.Render())

	target := "natural"
	if r.Target > 0 {
		target = strconv.Itoa(r.Target)
	}
	fmt.Fprintln(w, formatKeyValue("width", fmt.Sprintf("%d of %s", r.Width, target)))
	fmt.Fprintln(w, formatKeyValue("minimum", strconv.Itoa(r.MinWidth)))
	if r.GroupLanes > 0 {
		fmt.Fprintln(w, formatKeyValue("lanes", strconv.Itoa(r.GroupLanes)))
	}
	if r.Overflow > 0 {
		fmt.Fprintln(w, formatWarning("overflows by %d", r.Overflow))
	}
}

// columnState summarizes the computed state of a column in one word.
func columnState(cl columnReport) string {
	switch {
	case cl.Hidden:
		return "hidden"
	case cl.FitTrunc:
		return "cut"
	case cl.Extreme:
		return "extreme"
	}
	return ""
}
