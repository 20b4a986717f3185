package table

import (
	"fmt"
	"math"
	"strconv"

	errs "github.com/matzehuels/colfit/pkg/errors"
)

type hintKind uint8

const (
	hintNone hintKind = iota
	hintRelative
	hintAbsolute
)

// Hint is the width hint of a column: nothing, a fraction of the target
// width, or an absolute character count.
type Hint struct {
	kind     hintKind
	fraction float64
	count    int
}

// NoHint returns the zero Hint.
func NoHint() Hint { return Hint{} }

// Relative returns a hint for fraction f of the target width.
// f must be in [0,1); zero is the same as NoHint.
func Relative(f float64) Hint {
	if f < 0 || f >= 1 {
		panic(fmt.Sprintf("table: relative hint %v out of range [0,1)", f))
	}
	if f == 0 {
		return Hint{}
	}
	return Hint{kind: hintRelative, fraction: f}
}

// Absolute returns a hint for n characters. n must be at least 1.
func Absolute(n int) Hint {
	if n < 1 {
		panic(fmt.Sprintf("table: absolute hint %d must be >= 1", n))
	}
	return Hint{kind: hintAbsolute, count: n}
}

// maxHintCount bounds absolute hints read from table files.
const maxHintCount = math.MaxInt32

// ParseHint converts the single-number encoding used by table files: a value
// below one is a fraction, anything else is truncated to a character count.
// NaN, infinities and counts above MaxInt32 are rejected.
func ParseHint(v float64) (Hint, error) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return Hint{}, errs.New(errs.ErrCodeInvalidHint, "width hint %v is not a finite number", v)
	case v > maxHintCount:
		return Hint{}, errs.New(errs.ErrCodeInvalidHint, "width hint %v too large (max %d)", v, maxHintCount)
	case v < 0:
		return Hint{}, errs.New(errs.ErrCodeInvalidHint, "negative width hint %v", v)
	case v < 1:
		return Relative(v), nil
	default:
		return Absolute(int(v)), nil
	}
}

// IsRelative reports whether h is a non-zero fraction of the target width.
func (h Hint) IsRelative() bool { return h.kind == hintRelative }

// IsAbsolute reports whether h is a character count.
func (h Hint) IsAbsolute() bool { return h.kind == hintAbsolute }

// IsZero reports whether h carries no hint at all.
func (h Hint) IsZero() bool { return h.kind == hintNone }

// Fraction returns the relative fraction, or 0 for other kinds.
func (h Hint) Fraction() float64 { return h.fraction }

// Count returns the absolute character count, or 0 for other kinds.
func (h Hint) Count() int { return h.count }

// Of resolves the hint against target width: the truncated fraction for
// relative hints, the count for absolute ones, 0 otherwise.
func (h Hint) Of(target int) int {
	switch h.kind {
	case hintRelative:
		return int(h.fraction * float64(target))
	case hintAbsolute:
		return h.count
	}
	return 0
}

// String implements fmt.Stringer.
func (h Hint) String() string {
	switch h.kind {
	case hintRelative:
		return strconv.FormatFloat(h.fraction*100, 'f', -1, 64) + "%"
	case hintAbsolute:
		return strconv.Itoa(h.count)
	}
	return "none"
}
