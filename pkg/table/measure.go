package table

import (
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mattn/go-runewidth"
)

// Measurer returns the display width of s in terminal cells, or a negative
// value when s is not valid UTF-8.
type Measurer interface {
	Width(s string) int
}

// MeasurerFunc adapts a function to [Measurer].
type MeasurerFunc func(s string) int

// Width implements Measurer.
func (f MeasurerFunc) Width(s string) int { return f(s) }

type runeWidth struct {
	cond *runewidth.Condition
}

// RuneWidth measures with go-runewidth using the process locale settings.
var RuneWidth Measurer = NewRuneWidth(runewidth.DefaultCondition.EastAsianWidth)

// NewRuneWidth returns a go-runewidth measurer. With eastAsian set,
// ambiguous-width characters count as two cells.
func NewRuneWidth(eastAsian bool) Measurer {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsian
	return runeWidth{cond: cond}
}

func (m runeWidth) Width(s string) int {
	if !utf8.ValidString(s) {
		return -1
	}
	return m.cond.StringWidth(s)
}

// ANSIWidth measures like RuneWidth but skips terminal escape sequences, for
// cells that carry their own styling.
var ANSIWidth Measurer = MeasurerFunc(func(s string) int {
	if !utf8.ValidString(s) {
		return -1
	}
	return lipgloss.Width(s)
})

type cachedMeasurer struct {
	next  Measurer
	cache *lru.Cache[string, int]
}

// NewCachedMeasurer memoizes up to size results of next. Tables with many
// repeated cell values avoid re-measuring them on every pass.
func NewCachedMeasurer(next Measurer, size int) (Measurer, error) {
	c, err := lru.New[string, int](size)
	if err != nil {
		return nil, err
	}
	return &cachedMeasurer{next: next, cache: c}, nil
}

func (m *cachedMeasurer) Width(s string) int {
	if w, ok := m.cache.Get(s); ok {
		return w
	}
	w := m.next.Width(s)
	m.cache.Add(s, w)
	return w
}

// SafeWidth measures s with m, treating malformed text as zero width.
func SafeWidth(m Measurer, s string) int {
	if s == "" {
		return 0
	}
	if w := m.Width(s); w > 0 {
		return w
	}
	return 0
}
