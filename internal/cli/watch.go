package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/colfit/pkg/buildinfo"
	"github.com/matzehuels/colfit/pkg/layout"
	"github.com/matzehuels/colfit/pkg/render"
	"github.com/matzehuels/colfit/pkg/tabfile"
	"github.com/matzehuels/colfit/pkg/table"
)

// watchCommand creates the watch command, a full-screen preview that is
// recomputed whenever the terminal is resized.
func (c *CLI) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Preview a table file, refitting it on every resize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runWatch(ctx context.Context, path string) error {
	s, err := c.opts.load()
	if err != nil {
		return err
	}
	// the window decides the width unless one is configured
	tb, err := tabfile.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := s.apply(tb); err != nil {
		return err
	}

	// log output would corrupt the alternate screen
	m := newWatchModel(ctx, path, tb, layout.NewCalculator(log.New(io.Discard)))
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// watchModel - refit on resize
// =============================================================================

type watchModel struct {
	ctx  context.Context
	path string
	tb   *table.Table
	calc *layout.Calculator

	width, height int
	fixed         int // configured width, 0 to follow the window
	body          string
	status        string
	err           error
}

func newWatchModel(ctx context.Context, path string, tb *table.Table, calc *layout.Calculator) watchModel {
	fixed := 0
	if tb.Interactive {
		fixed = tb.TermWidth
	}
	return watchModel{ctx: ctx, path: path, tb: tb, calc: calc, fixed: fixed}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "m":
			m.tb.MaxOut = !m.tb.MaxOut
			m.refit()
		case "w":
			m.tb.NoWrap = !m.tb.NoWrap
			m.refit()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refit()
	}
	return m, nil
}

// refit recomputes the table for the current window and renders it.
func (m *watchModel) refit() {
	width := m.width
	if m.fixed > 0 {
		width = m.fixed
	}
	res, err := fitForRender(m.ctx, m.calc, m.tb, width)
	if err != nil {
		m.err = err
		return
	}
	body, err := render.Render(m.tb, renderOptions(m.tb, false)...)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.body = body
	m.status = watchStatus(res, m.tb)
}

func watchStatus(res layout.Result, tb *table.Table) string {
	parts := []string{fmt.Sprintf("width %d/%d", res.Width, res.Target)}
	if res.Overflowed() {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("overflow %d", res.Overflow)))
	}
	if tb.MaxOut {
		parts = append(parts, "maxout")
	}
	if tb.NoWrap {
		parts = append(parts, "nowrap")
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.path))
	b.WriteString(StyleDim.Render("  " + appName + " " + buildinfo.Short()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("m max-out  w no-wrap  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(formatError("%v", m.err))
		return b.String()
	}

	lines := strings.Split(strings.TrimRight(m.body, "\n"), "\n")
	if avail := m.height - 5; avail > 0 && len(lines) > avail {
		lines = lines[:avail]
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(m.status)

	return b.String()
}
