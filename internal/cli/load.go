package cli

import (
	"context"

	"github.com/matzehuels/colfit/pkg/tabfile"
	"github.com/matzehuels/colfit/pkg/table"
)

// loadTable reads a table file and applies the command-line settings.
// Without any configured width, tables printed to a terminal are fitted to it.
func loadTable(ctx context.Context, path string, s *settings) (*table.Table, error) {
	tb, err := tabfile.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := s.apply(tb); err != nil {
		return nil, err
	}
	fitTerminal(tb)
	return tb, nil
}
