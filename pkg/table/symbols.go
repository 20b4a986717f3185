package table

// Symbols are the glyphs used for tree art and group lanes.
type Symbols struct {
	Branch   string // child with following siblings
	Right    string // last child
	Vertical string // ancestor with following siblings
	Empty    string // ancestor without following siblings

	GroupFirst    string // opens a group span
	GroupMiddle   string // member inside a span
	GroupLast     string // closes a group span
	GroupVertical string // lane passing by
}

// DefaultSymbols are the UTF-8 box-drawing glyphs.
var DefaultSymbols = Symbols{
	Branch:        "├─",
	Right:         "└─",
	Vertical:      "│ ",
	Empty:         "  ",
	GroupFirst:    "┌",
	GroupMiddle:   "├",
	GroupLast:     "└",
	GroupVertical: "│",
}

// ASCIISymbols are plain ASCII glyphs for terminals without UTF-8.
var ASCIISymbols = Symbols{
	Branch:        "|-",
	Right:         "`-",
	Vertical:      "| ",
	Empty:         "  ",
	GroupFirst:    ",",
	GroupMiddle:   "|",
	GroupLast:     "'",
	GroupVertical: "|",
}

// TreeArt returns the branch decoration in front of r: one segment per
// non-root ancestor, then r's own connector. Roots get none.
func (s Symbols) TreeArt(r *Row) string {
	if r.parent == nil {
		return ""
	}
	var segs []string
	for a := r.parent; a.parent != nil; a = a.parent {
		if a.IsLastChild() {
			segs = append(segs, s.Empty)
		} else {
			segs = append(segs, s.Vertical)
		}
	}
	var out []byte
	for i := len(segs) - 1; i >= 0; i-- {
		out = append(out, segs[i]...)
	}
	if r.IsLastChild() {
		return string(append(out, s.Right...))
	}
	return string(append(out, s.Branch...))
}
