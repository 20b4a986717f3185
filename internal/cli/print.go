package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/colfit/pkg/layout"
	"github.com/matzehuels/colfit/pkg/render"
	"github.com/matzehuels/colfit/pkg/table"
)

// printCommand creates the print command, which renders a table file.
func (c *CLI) printCommand() *cobra.Command {
	var noHeader bool

	cmd := &cobra.Command{
		Use:   "print FILE",
		Short: "Render a table file fitted to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrint(cmd.Context(), cmd.OutOrStdout(), args[0], noHeader)
		},
	}

	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the header line")

	return cmd
}

func (c *CLI) runPrint(ctx context.Context, w io.Writer, path string, noHeader bool) error {
	logger := loggerFromContext(ctx)
	s, err := c.opts.load()
	if err != nil {
		return err
	}
	tb, err := loadTable(ctx, path, s)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	res, err := fitForRender(ctx, layout.NewCalculator(logger), tb, tb.TermWidth)
	if err != nil {
		return fmt.Errorf("fit %s: %w", path, err)
	}
	if res.Overflowed() {
		logger.Warn("table wider than target", "width", res.Width, "target", res.Target)
	}

	return render.Fprint(w, tb, renderOptions(tb, noHeader)...)
}

// fitForRender computes tb for a screen of the given width, leaving room for
// the group lanes in front of every line.
func fitForRender(ctx context.Context, calc *layout.Calculator, tb *table.Table, width int) (layout.Result, error) {
	if width > 0 {
		tb.TermWidth = max(width-render.GutterWidth(tb), 1)
		tb.Interactive = true
	}
	return calc.Calculate(ctx, tb, nil)
}

func renderOptions(tb *table.Table, noHeader bool) []render.Option {
	var opts []render.Option
	if tb.Symbols == table.DefaultSymbols {
		opts = append(opts, render.WithTail("…"))
	}
	if noHeader {
		opts = append(opts, render.WithoutHeader())
	}
	return opts
}
