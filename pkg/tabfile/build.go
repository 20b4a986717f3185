package tabfile

import (
	errs "github.com/matzehuels/colfit/pkg/errors"
	"github.com/matzehuels/colfit/pkg/table"
)

// Build converts a decoded file into a table. Every reference (parent, cell
// column, group member) must resolve, and every hint and flag must parse.
func Build(f *File) (*table.Table, error) {
	tb := table.New()
	applySettings(tb, f.Table)

	if err := buildColumns(tb, f.Columns); err != nil {
		return nil, err
	}
	ids, err := buildRows(tb, f.Rows)
	if err != nil {
		return nil, err
	}
	if err := buildGroups(tb, f.Groups, ids); err != nil {
		return nil, err
	}
	return tb, nil
}

func applySettings(tb *table.Table, s Settings) {
	if s.Width > 0 {
		tb.TermWidth = s.Width
		tb.Interactive = true
	}
	if s.Separator != nil {
		tb.Separator = *s.Separator
	}
	tb.MaxOut = s.MaxOut
	tb.NoWrap = s.NoWrap
	if s.ASCII {
		tb.Symbols = table.ASCIISymbols
	}
}

func buildColumns(tb *table.Table, cols []Column) error {
	if len(cols) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "table has no columns")
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if err := errs.ValidateColumnName(c.Name); err != nil {
			return err
		}
		if seen[c.Name] {
			return errs.New(errs.ErrCodeInvalidInput, "duplicate column %q", c.Name)
		}
		seen[c.Name] = true

		hint, err := table.ParseHint(c.Hint)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidHint, "column %q: %s", c.Name, errs.UserMessage(err))
		}
		flags, err := table.ParseFlags(c.Flags...)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidInput, "column %q: %s", c.Name, errs.UserMessage(err))
		}
		if c.Min < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "column %q: negative minimum width %d", c.Name, c.Min)
		}
		cl := tb.NewColumn(c.Name, hint, flags)
		cl.MinWidth = c.Min
	}
	return nil
}

func buildRows(tb *table.Table, rows []Row) (map[string]*table.Row, error) {
	ids := make(map[string]*table.Row, len(rows))
	for i, spec := range rows {
		var parent *table.Row
		if spec.Parent != "" {
			p, ok := ids[spec.Parent]
			if !ok {
				return nil, errs.New(errs.ErrCodeInvalidInput,
					"row %d: parent %q is not defined before it", i, spec.Parent)
			}
			parent = p
		}
		r := tb.NewRow(parent)
		if spec.ID != "" {
			if _, dup := ids[spec.ID]; dup {
				return nil, errs.New(errs.ErrCodeInvalidInput, "duplicate row id %q", spec.ID)
			}
			ids[spec.ID] = r
		}
		for name, data := range spec.Cells {
			cl := tb.Column(name)
			if cl == nil {
				return nil, errs.New(errs.ErrCodeInvalidInput, "row %d: unknown column %q", i, name)
			}
			r.SetData(cl, data)
		}
	}
	return ids, nil
}

func buildGroups(tb *table.Table, groups []Group, ids map[string]*table.Row) error {
	for _, spec := range groups {
		if len(spec.Members) == 0 {
			return errs.New(errs.ErrCodeInvalidInput, "group %q has no members", spec.Name)
		}
		members := make([]*table.Row, len(spec.Members))
		for i, id := range spec.Members {
			r, ok := ids[id]
			if !ok {
				return errs.New(errs.ErrCodeInvalidInput, "group %q: unknown row %q", spec.Name, id)
			}
			members[i] = r
		}

		g := tb.NewGroup(spec.Name)
		last := len(members) - 1
		if spec.Open {
			last = len(members)
		}
		if err := g.Add(members[:last]...); err != nil {
			return errs.New(errs.ErrCodeInvalidInput, "group %q: %s", spec.Name, errs.UserMessage(err))
		}
		if !spec.Open {
			if err := g.Close(members[last]); err != nil {
				return errs.New(errs.ErrCodeInvalidInput, "group %q: %s", spec.Name, errs.UserMessage(err))
			}
		}
	}
	return nil
}
