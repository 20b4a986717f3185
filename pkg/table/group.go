package table

import errs "github.com/matzehuels/colfit/pkg/errors"

// Group is a bracketed run of related rows. Its span opens at the first
// member visited in tree order and closes at the member passed to
// [Group.Close]; a group that is never closed stays open to the end.
type Group struct {
	Name string

	// NOverlaps is the number of other groups whose rows appear inside this
	// group's open span. It is rewritten by every computation.
	NOverlaps int

	members []*Row
	last    *Row
}

// Add appends rows to the group. A row already in another group is rejected.
func (g *Group) Add(rows ...*Row) error {
	for _, r := range rows {
		if r.group != nil {
			if r.group == g {
				continue
			}
			return errs.New(errs.ErrCodeInvalidInput, "row already belongs to group %q", r.group.Name)
		}
		r.group = g
		g.members = append(g.members, r)
	}
	return nil
}

// Close makes r the last member of the group, adding it first if needed.
func (g *Group) Close(r *Row) error {
	if err := g.Add(r); err != nil {
		return err
	}
	if g.last != nil {
		g.last.lastOf = false
	}
	g.last = r
	r.lastOf = true
	return nil
}

// Members returns the group's rows in the order they were added.
func (g *Group) Members() []*Row { return g.members }

// Last returns the member that closes the group, or nil while it is open.
func (g *Group) Last() *Row { return g.last }

// Overlapping reports whether another group interleaves with this one.
func (g *Group) Overlapping() bool { return g.NOverlaps > 0 }
