package units

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog is the fixed, ordered list of units of one dimension.
type Catalog[D Dimension] struct {
	units []Unit[D]
}

// newCatalog builds a catalog and panics if two units share a name under
// case-insensitive comparison. The tables below are fixed, so a collision is
// a programming error caught at package initialisation.
func newCatalog[D Dimension](units ...Unit[D]) Catalog[D] {
	seen := make(map[string]string, len(units)*2)
	for _, u := range units {
		names := append([]string{u.short, u.long}, u.aliases...)
		for _, n := range names {
			key := strings.ToLower(n)
			if owner, dup := seen[key]; dup && owner != u.short {
				panic(fmt.Sprintf("units: %s name %q used by both %s and %s", DimensionName[D](), n, owner, u.short))
			}
			seen[key] = u.short
		}
	}
	return Catalog[D]{units: units}
}

// Dimension returns the lowercase dimension name of the catalog.
func (c Catalog[D]) Dimension() string { return DimensionName[D]() }

// All returns the units in catalog order.
func (c Catalog[D]) All() []Unit[D] { return slices.Clone(c.units) }

// Shorts returns the short names in catalog order.
func (c Catalog[D]) Shorts() []string {
	out := make([]string, 0, len(c.units))
	for _, u := range c.units {
		out = append(out, u.short)
	}
	return out
}

// Find returns the first unit whose short name, long name or alias matches
// name, ignoring case.
func (c Catalog[D]) Find(name string) (Unit[D], bool) {
	for _, u := range c.units {
		if u.Matches(name) {
			return u, true
		}
	}
	return Unit[D]{}, false
}

func (c Catalog[D]) mustFind(name string) Unit[D] {
	u, ok := c.Find(name)
	if !ok {
		panic(fmt.Sprintf("units: no %s unit named %q", DimensionName[D](), name))
	}
	return u
}

var (
	lengths = buildLengthCatalog()
	times   = buildTimeCatalog()
	masses  = buildMassCatalog()
)

// Lengths returns the length catalog.
func Lengths() Catalog[Length] { return lengths }

// Times returns the time catalog.
func Times() Catalog[Time] { return times }

// Masses returns the mass catalog.
func Masses() Catalog[Mass] { return masses }

// Length units.
var (
	Millimeter = lengths.mustFind("mm")
	Centimeter = lengths.mustFind("cm")
	Inch       = lengths.mustFind("i")
	Foot       = lengths.mustFind("ft")
	Yard       = lengths.mustFind("yd")
	Meter      = lengths.mustFind("m")
	Kilometer  = lengths.mustFind("km")
	Mile       = lengths.mustFind("mi")
)

// Time units. Note that "m" is the minute in this catalog.
var (
	Millisecond = times.mustFind("ms")
	Second      = times.mustFind("s")
	Minute      = times.mustFind("minute")
	Hour        = times.mustFind("h")
	Day         = times.mustFind("d")
	Year        = times.mustFind("y")
)

// Mass units.
var (
	Gram     = masses.mustFind("g")
	Kilogram = masses.mustFind("kg")
)

// Ratios that are defined in terms of another unit are derived by
// multiplication here, top to bottom, so every ratio stays exact.
func buildLengthCatalog() Catalog[Length] {
	inch := decimal.New(254, -4)
	foot := inch.Mul(decimal.NewFromInt(12))
	yard := foot.Mul(decimal.NewFromInt(3))

	return newCatalog(
		newUnit[Length]("mm", "Millimeter", decimal.New(1, -3)),
		newUnit[Length]("cm", "Centimeter", decimal.New(1, -2)),
		newUnit[Length]("i", "Inch", inch),
		newUnit[Length]("ft", "Foot", foot),
		newUnit[Length]("yd", "Yard", yard),
		newUnit[Length]("m", "Meter", decimal.NewFromInt(1)),
		newUnit[Length]("km", "Kilometer", decimal.NewFromInt(1000)),
		newUnit[Length]("mi", "Mile", decimal.New(1609344, -3)),
	)
}

func buildTimeCatalog() Catalog[Time] {
	second := decimal.NewFromInt(1)
	minute := second.Mul(decimal.NewFromInt(60))
	hour := minute.Mul(decimal.NewFromInt(60))
	day := hour.Mul(decimal.NewFromInt(24))
	year := day.Mul(decimal.NewFromInt(365))

	return newCatalog(
		newUnit[Time]("ms", "Millisecond", decimal.New(1, -3)),
		newUnit[Time]("s", "Second", second),
		newUnit[Time]("m", "Minute", minute),
		newUnit[Time]("h", "Hour", hour),
		newUnit[Time]("d", "Day", day),
		newUnit[Time]("y", "Year", year),
	)
}

func buildMassCatalog() Catalog[Mass] {
	return newCatalog(
		newUnit[Mass]("g", "Gram", decimal.New(1, -3)),
		newUnit[Mass]("kg", "Kilogram", decimal.NewFromInt(1)),
	)
}
