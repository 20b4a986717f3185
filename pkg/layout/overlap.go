package layout

import "github.com/matzehuels/colfit/pkg/table"

// groupLanes sets NOverlaps on every group and returns the maximum number of
// groups open at the same time: zero without groups, otherwise one more than
// the largest overlap count.
func groupLanes(tb *table.Table) int {
	groups := tb.Groups()
	if len(groups) == 0 {
		return 0
	}
	most := 0
	for _, g := range groups {
		most = max(most, countOverlaps(tb, g))
	}
	return most + 1
}

// countOverlaps walks the forest once and counts the groups with rows inside
// g's open span.
func countOverlaps(tb *table.Table, g *table.Group) int {
	flagged := make(map[*table.Group]bool)
	open := false
	for _, r := range tb.Roots() {
		var closed bool
		closed, open = walkOverlap(g, r, open, flagged)
		if closed {
			break
		}
	}
	g.NOverlaps = len(flagged)
	return g.NOverlaps
}

// walkOverlap visits r and its subtree. It returns closed when r is g's last
// member, and the span state after the subtree.
func walkOverlap(g *table.Group, r *table.Row, open bool, flagged map[*table.Group]bool) (closed, stillOpen bool) {
	own := r.Group()
	if own == g && r.IsLastGroupMember() {
		return true, open
	}
	if !open && own == g {
		open = true
	}
	for _, child := range r.Children() {
		var done bool
		done, open = walkOverlap(g, child, open, flagged)
		if done {
			break
		}
	}
	if open && own != nil && own != g {
		flagged[own] = true
	}
	return false, open
}
