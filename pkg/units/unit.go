package units

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Dimension is the set of phantom types that tag a Unit or Quantity with the
// physical quantity it measures. It is a constraint only; the tag types carry
// no data.
type Dimension interface {
	Length | Time | Mass
	dimension() string
}

// Length measures distance. Its base unit is the meter.
type Length struct{}

// Time measures duration. Its base unit is the second.
type Time struct{}

// Mass measures weight. Its base unit is the kilogram.
type Mass struct{}

func (Length) dimension() string { return "length" }
func (Time) dimension() string   { return "time" }
func (Mass) dimension() string   { return "mass" }

// DimensionName returns the lowercase name of D ("length", "time", "mass").
func DimensionName[D Dimension]() string {
	var d D
	return d.dimension()
}

// Unit is a named unit of dimension D with a fixed ratio to D's base unit.
// Units are obtained from a Catalog or the package-level unit variables; the
// zero Unit is not usable for conversion.
type Unit[D Dimension] struct {
	short   string
	long    string
	aliases []string
	ratio   decimal.Decimal
}

func newUnit[D Dimension](short, long string, ratio decimal.Decimal, aliases ...string) Unit[D] {
	return Unit[D]{
		short:   short,
		long:    long,
		aliases: aliases,
		ratio:   ratio,
	}
}

// Short returns the canonical symbol, e.g. "km".
func (u Unit[D]) Short() string { return u.short }

// Long returns the full name, e.g. "Kilometer".
func (u Unit[D]) Long() string { return u.long }

// Aliases returns the additional accepted names for the unit.
func (u Unit[D]) Aliases() []string { return slices.Clone(u.aliases) }

// Ratio returns the number of base units in one of this unit.
func (u Unit[D]) Ratio() decimal.Decimal { return u.ratio }

// IsZero reports whether u is the zero Unit.
func (u Unit[D]) IsZero() bool { return u.short == "" && u.ratio.IsZero() }

// Equal reports whether u and other denote the same unit.
func (u Unit[D]) Equal(other Unit[D]) bool {
	return u.short == other.short && u.long == other.long && u.ratio.Equal(other.ratio)
}

// Matches reports whether name is the short name, long name or an alias of u,
// ignoring case.
func (u Unit[D]) Matches(name string) bool {
	return matchesName(name, u.short, u.long, u.aliases)
}

// String returns the short name.
func (u Unit[D]) String() string { return u.short }

// LongString returns the short name followed by the long name in parentheses.
func (u Unit[D]) LongString() string { return u.short + " (" + u.long + ")" }

func matchesName(name, short, long string, aliases []string) bool {
	if strings.EqualFold(name, short) || strings.EqualFold(name, long) {
		return true
	}
	for _, a := range aliases {
		if strings.EqualFold(name, a) {
			return true
		}
	}
	return false
}
