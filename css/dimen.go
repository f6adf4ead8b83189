package css

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
//
//	type DimenT
//	    = Auto
//	    | Inherit
//	    | Initial
//	    | JustDimen dimen
//	    | Percentage Percent
type DimenT struct {
	d       dimen.DU
	percent percent.Percent
	flags   uint32
}

// Auto is the dimension "auto".
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Inherit is the dimension "inherit".
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

// Initial is the dimension "initial".
func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n percent.Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// IsNone is true for the zero DimenT, which is not a valid dimension.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// CSSString renders d for a style declaration, e.g. "10pt", "auto" or "80%".
func (d DimenT) CSSString() string {
	var du dimen.DU
	var p percent.Percent
	m := DimenPattern[string](d).With(&du).WithPercentage(&p)
	return m.OneOf(DimenPatterns[string]{
		Auto:       "auto",
		Inherit:    "inherit",
		Initial:    "initial",
		Just:       strconv.FormatFloat(float64(du)/float64(dimen.PT), 'g', -1, 64) + "pt",
		Percentage: p.String(),
	})
}

// ErrDimen is returned for values ParseDimen does not understand.
var ErrDimen = errors.New("css: not a dimension")

// ParseDimen reads keywords, points ("12pt") and integer percentages ("80%").
func ParseDimen(s string) (DimenT, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	}
	if n, ok := strings.CutSuffix(s, "%"); ok {
		p, err := strconv.Atoi(n)
		if err != nil {
			return DimenT{}, fmt.Errorf("%w: %q", ErrDimen, s)
		}
		return Percentage(percent.FromInt(p)), nil
	}
	if n, ok := strings.CutSuffix(s, "pt"); ok {
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return DimenT{}, fmt.Errorf("%w: %q", ErrDimen, s)
		}
		return JustDimen(dimen.DU(f * float64(dimen.PT))), nil
	}
	tracer().Debugf("cannot parse dimension %q", s)
	return DimenT{}, fmt.Errorf("%w: %q", ErrDimen, s)
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns holds the result of a match expression per kind of dimension.
// Default is selected for the zero DimenT.
type DimenPatterns[T any] struct {
	Auto       T
	Inherit    T
	Initial    T
	Just       T
	Percentage T
	Default    T
}

// DimenPattern starts a match expression over d.
func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

// MatchExpr selects one of several values depending on a dimension.
type MatchExpr[T any] struct {
	dimen DimenT
}

// OneOf returns the pattern matching the kind of the dimension.
func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	if m.dimen.flags&relativeMask == dimenPercent {
		return patterns.Percentage
	}
	switch m.dimen.flags & kindMask {
	case dimenAuto:
		return patterns.Auto
	case dimenAbsolute:
		return patterns.Just
	case dimenInitial:
		return patterns.Initial
	case dimenInherit:
		return patterns.Inherit
	}
	return patterns.Default
}

// With stores the fixed value of the dimension in du, zero for other kinds.
func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

// WithPercentage stores the relative value of the dimension in p.
func (m *MatchExpr[T]) WithPercentage(p *percent.Percent) *MatchExpr[T] {
	*p = m.dimen.percent
	return m
}
