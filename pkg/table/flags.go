package table

import (
	"sort"
	"strings"

	errs "github.com/matzehuels/colfit/pkg/errors"
)

// Flags is the capability set of a column. Query it through the predicates
// on [Column] rather than testing bits.
type Flags uint16

const (
	// FlagHidden excludes the column from output and from every width sum.
	FlagHidden Flags = 1 << iota
	// FlagTrunc allows the column to be truncated when space runs out.
	FlagTrunc
	// FlagWrap allows multi-line cells; without a chunk-size function it is
	// treated like FlagTrunc when reducing.
	FlagWrap
	// FlagTree renders the row forest as branch art in this column.
	FlagTree
	// FlagRight right-aligns cells; such a column is never stretched to
	// absorb left-over width.
	FlagRight
	// FlagStrictWidth keeps the column at its content width: it is not
	// raised to its minimum and does not take part in enlarging.
	FlagStrictWidth
	// FlagNoExtremes excludes outlier cells from the natural width.
	FlagNoExtremes
)

var flagNames = map[string]Flags{
	"hidden":      FlagHidden,
	"trunc":       FlagTrunc,
	"wrap":        FlagWrap,
	"tree":        FlagTree,
	"right":       FlagRight,
	"strictwidth": FlagStrictWidth,
	"noextremes":  FlagNoExtremes,
}

// Has reports whether every flag in x is set in f.
func (f Flags) Has(x Flags) bool { return f&x == x }

// ParseFlags converts flag names ("trunc", "wrap", ...) into a set.
func ParseFlags(names ...string) (Flags, error) {
	var f Flags
	for _, n := range names {
		v, ok := flagNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, errs.New(errs.ErrCodeInvalidInput, "unknown column flag %q", n)
		}
		f |= v
	}
	return f, nil
}

// String returns the flag names joined by commas, sorted.
func (f Flags) String() string {
	var names []string
	for n, v := range flagNames {
		if f.Has(v) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
