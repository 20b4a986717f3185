package table

// Row is one line of output. Rows form a forest through their parent links
// and may additionally belong to one [Group].
type Row struct {
	cells    []string
	parent   *Row
	children []*Row
	group    *Group
	lastOf   bool // closes its group's span
	table    *Table
}

// SetData sets the cell text for column cl.
func (r *Row) SetData(cl *Column, data string) {
	for len(r.cells) <= cl.seq {
		r.cells = append(r.cells, "")
	}
	r.cells[cl.seq] = data
}

// Data returns the cell text for column cl, or "" when unset.
func (r *Row) Data(cl *Column) string {
	if cl.seq < len(r.cells) {
		return r.cells[cl.seq]
	}
	return ""
}

// Parent returns the parent row, or nil for a root.
func (r *Row) Parent() *Row { return r.parent }

// Children returns the child rows in insertion order.
func (r *Row) Children() []*Row { return r.children }

// Group returns the group the row belongs to, or nil.
func (r *Row) Group() *Group { return r.group }

// IsLastGroupMember reports whether r closes its group's span.
func (r *Row) IsLastGroupMember() bool { return r.group != nil && r.lastOf }

// IsFirstGroupMember reports whether r opens its group's span.
func (r *Row) IsFirstGroupMember() bool {
	return r.group != nil && len(r.group.members) > 0 && r.group.members[0] == r
}

// IsLastChild reports whether r is the last child of its parent. Roots are
// never last children.
func (r *Row) IsLastChild() bool {
	if r.parent == nil {
		return false
	}
	kids := r.parent.children
	return kids[len(kids)-1] == r
}

// Depth returns the number of ancestors of r.
func (r *Row) Depth() int {
	d := 0
	for p := r.parent; p != nil; p = p.parent {
		d++
	}
	return d
}
