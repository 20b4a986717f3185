package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/colfit/pkg/table"
)

// GutterWidth returns the number of cells the group lanes occupy in front of
// every line, including the space after them. It is zero without groups.
func GutterWidth(tb *table.Table) int {
	_, lanes := laneArt(tb)
	if lanes == 0 {
		return 0
	}
	return lanes + 1
}

// laneArt assigns every open group a lane, in tree order, and returns the
// lane glyphs for each row along with the number of lanes. A lane is freed
// after its group's last member.
func laneArt(tb *table.Table) (map[*table.Row]string, int) {
	var slots []*table.Group
	type step struct {
		row   *table.Row
		lanes []string
	}
	var steps []step

	tb.Walk(func(r *table.Row) bool {
		g := r.Group()
		opened := -1
		if g != nil && !containsGroup(slots, g) {
			opened = freeSlot(&slots)
			slots[opened] = g
		}

		cells := make([]string, len(slots))
		closing := -1
		for i, s := range slots {
			switch {
			case s == nil:
				cells[i] = " "
			case s != g:
				cells[i] = tb.Symbols.GroupVertical
			case r.IsLastGroupMember():
				cells[i] = tb.Symbols.GroupLast
				closing = i
			case i == opened:
				cells[i] = tb.Symbols.GroupFirst
			default:
				cells[i] = tb.Symbols.GroupMiddle
			}
		}
		if closing >= 0 {
			slots[closing] = nil
		}
		steps = append(steps, step{row: r, lanes: cells})
		return true
	})

	width := max(tb.GroupLanes, len(slots))
	if width == 0 {
		return nil, 0
	}
	out := make(map[*table.Row]string, len(steps))
	for _, s := range steps {
		line := strings.Join(s.lanes, "")
		out[s.row] = runewidth.FillRight(line, width)
	}
	return out, width
}

func containsGroup(slots []*table.Group, g *table.Group) bool {
	for _, s := range slots {
		if s == g {
			return true
		}
	}
	return false
}

// freeSlot returns the first empty lane, growing the set when all are taken.
func freeSlot(slots *[]*table.Group) int {
	for i, s := range *slots {
		if s == nil {
			return i
		}
	}
	*slots = append(*slots, nil)
	return len(*slots) - 1
}

func blankGutter(width int) string {
	return strings.Repeat(" ", width)
}

// continuation replaces the glyphs of a row's gutter for the extra lines of
// a wrapped row: lanes that stay open continue, everything else is blank.
func continuation(tb *table.Table, gutter string) string {
	var sb strings.Builder
	for _, r := range gutter {
		switch string(r) {
		case tb.Symbols.GroupFirst, tb.Symbols.GroupMiddle, tb.Symbols.GroupVertical:
			sb.WriteString(tb.Symbols.GroupVertical)
		default:
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}
