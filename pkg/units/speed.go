package units

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SpeedEqualityPlaces is the number of decimal places, in meters per second,
// at which two speeds are compared. Conversions between units such as miles
// and kilometers per hour do not terminate, so speeds are rounded to this
// many places before comparison.
const SpeedEqualityPlaces int32 = 22

var (
	// ErrNonUnitTime is returned when a Speed is built from a time quantity
	// whose amount is not exactly 1.
	ErrNonUnitTime = errors.New("units: speed must be distance per one time unit")

	// ErrZeroSpeed is returned when the time to cover a distance is asked of
	// a speed of zero.
	ErrZeroSpeed = errors.New("units: time taken is undefined for a zero speed")
)

// SpeedUnit is a distance unit per one time unit, such as kilometers per hour.
type SpeedUnit struct {
	distance Unit[Length]
	per      Unit[Time]
	aliases  []string
}

// NewSpeedUnit composes a speed unit from a distance unit and a time unit.
func NewSpeedUnit(distance Unit[Length], per Unit[Time]) SpeedUnit {
	return SpeedUnit{distance: distance, per: per}
}

// Distance returns the distance unit.
func (u SpeedUnit) Distance() Unit[Length] { return u.distance }

// Per returns the time unit.
func (u SpeedUnit) Per() Unit[Time] { return u.per }

// Short returns the symbol form, e.g. "km/h".
func (u SpeedUnit) Short() string { return u.distance.short + "/" + u.per.short }

// Long returns the word form, e.g. "Kilometer per Hour".
func (u SpeedUnit) Long() string { return u.distance.long + " per " + u.per.long }

// Aliases returns the additional accepted names, e.g. "kph".
func (u SpeedUnit) Aliases() []string { return slices.Clone(u.aliases) }

// Ratio returns meters per second in one of this unit.
func (u SpeedUnit) Ratio() decimal.Decimal {
	return u.distance.ratio.DivRound(u.per.ratio, DivisionScale)
}

// Equal reports whether u and other have the same distance and time units.
// Aliases are not compared.
func (u SpeedUnit) Equal(other SpeedUnit) bool {
	return u.distance.Equal(other.distance) && u.per.Equal(other.per)
}

// Matches reports whether name is the short name, long name or an alias of u,
// ignoring case.
func (u SpeedUnit) Matches(name string) bool {
	return matchesName(name, u.Short(), u.Long(), u.aliases)
}

// String returns the short name.
func (u SpeedUnit) String() string { return u.Short() }

// SpeedCatalog is the fixed list of named speed units. Other speed units are
// composed from a length and a time unit.
type SpeedCatalog struct {
	units []SpeedUnit
}

// All returns the named speed units in catalog order.
func (c SpeedCatalog) All() []SpeedUnit { return slices.Clone(c.units) }

// Shorts returns the short names in catalog order.
func (c SpeedCatalog) Shorts() []string {
	out := make([]string, 0, len(c.units))
	for _, u := range c.units {
		out = append(out, u.Short())
	}
	return out
}

// Find returns the first named unit matching name, ignoring case.
func (c SpeedCatalog) Find(name string) (SpeedUnit, bool) {
	for _, u := range c.units {
		if u.Matches(name) {
			return u, true
		}
	}
	return SpeedUnit{}, false
}

// ParseUnit resolves a speed unit. Named units ("mph", "kmh", "km/h") are
// tried first; otherwise text is split on "/" and each side is resolved in
// the length and time catalogs, e.g. "ft / s". Both sides must resolve.
func (c SpeedCatalog) ParseUnit(text string) (SpeedUnit, bool) {
	text = strings.TrimSpace(text)
	if u, ok := c.Find(text); ok {
		return u, true
	}
	distanceName, perName, found := strings.Cut(text, "/")
	if !found {
		return SpeedUnit{}, false
	}
	distance, ok := lengths.Find(strings.TrimSpace(distanceName))
	if !ok {
		return SpeedUnit{}, false
	}
	per, ok := times.Find(strings.TrimSpace(perName))
	if !ok {
		return SpeedUnit{}, false
	}
	return NewSpeedUnit(distance, per), true
}

// Parse reads a speed such as "70mph", "100 km/h" or "13.6 ft / s".
func (c SpeedCatalog) Parse(text string) (Speed, bool) {
	number, unitName, ok := splitQuantity(speedPattern, text)
	if !ok {
		return Speed{}, false
	}
	amount, ok := parseAmount(number)
	if !ok {
		return Speed{}, false
	}
	unit, ok := c.ParseUnit(unitName)
	if !ok {
		return Speed{}, false
	}
	return NewSpeedIn(amount, unit), true
}

// MustParse is Parse for inputs known to be valid. It panics on failure.
func (c SpeedCatalog) MustParse(text string) Speed {
	s, ok := c.Parse(text)
	if !ok {
		panic("units: cannot parse speed " + strconv.Quote(text))
	}
	return s
}

var speeds = SpeedCatalog{units: []SpeedUnit{
	{distance: Mile, per: Hour, aliases: []string{"mph"}},
	{distance: Kilometer, per: Hour, aliases: []string{"kph", "kmh"}},
	{distance: Meter, per: Second, aliases: []string{"ms"}},
}}

// Named speed units.
var (
	MilesPerHour      = speeds.units[0]
	KilometersPerHour = speeds.units[1]
	MetersPerSecond   = speeds.units[2]
)

// Speeds returns the catalog of named speed units.
func Speeds() SpeedCatalog { return speeds }

// ParseSpeed parses a speed using the speed catalog.
func ParseSpeed(text string) (Speed, bool) { return speeds.Parse(text) }

// ParseSpeedUnit resolves a speed unit using the speed catalog.
func ParseSpeedUnit(text string) (SpeedUnit, bool) { return speeds.ParseUnit(text) }

// Speed is a distance covered per one time unit. Velocity is the same type;
// no direction is tracked.
type Speed struct {
	distance Distance
	per      Duration
}

// Velocity is an alias of Speed.
type Velocity = Speed

// NewSpeed returns distance per the time unit of per. per must be exactly one
// time unit ("100km per 1h"); any other amount returns ErrNonUnitTime.
func NewSpeed(distance Distance, per Duration) (Speed, error) {
	if !per.amount.Equal(decimal.NewFromInt(1)) {
		return Speed{}, ErrNonUnitTime
	}
	return Speed{distance: distance, per: per}, nil
}

// MustNewSpeed is NewSpeed that panics when per is not exactly one time unit.
func MustNewSpeed(distance Distance, per Duration) Speed {
	s, err := NewSpeed(distance, per)
	if err != nil {
		panic(err)
	}
	return s
}

// SpeedPer returns distance per one unit of per.
func SpeedPer(distance Distance, per Unit[Time]) Speed {
	return Speed{distance: distance, per: NewFromInt(1, per)}
}

// NewSpeedIn returns amount of unit, e.g. 70 MilesPerHour.
func NewSpeedIn(amount decimal.Decimal, unit SpeedUnit) Speed {
	return SpeedPer(New(amount, unit.distance), unit.per)
}

// Amount returns the distance amount covered per time unit.
func (s Speed) Amount() decimal.Decimal { return s.distance.amount }

// Distance returns the distance covered per time unit.
func (s Speed) Distance() Distance { return s.distance }

// Per returns the unit time quantity.
func (s Speed) Per() Duration { return s.per }

// Unit returns the speed unit the speed is expressed in.
func (s Speed) Unit() SpeedUnit { return NewSpeedUnit(s.distance.unit, s.per.unit) }

// ConvertTo returns the same speed expressed in target.
func (s Speed) ConvertTo(target SpeedUnit) Speed {
	if s.Unit().Equal(target) {
		return s
	}
	// amount * (d/t) / (d'/t') folded into a single division.
	num := s.distance.amount.Mul(s.distance.unit.ratio).Mul(target.per.ratio)
	den := s.per.unit.ratio.Mul(target.distance.ratio)
	return NewSpeedIn(num.DivRound(den, DivisionScale), target)
}

// metersPerSecond returns the speed in meters per second, rounded to
// SpeedEqualityPlaces.
func (s Speed) metersPerSecond() decimal.Decimal {
	return s.distance.base().
		DivRound(s.per.unit.ratio, DivisionScale).
		Round(SpeedEqualityPlaces)
}

// Equal reports whether s and other are the same speed once both are reduced
// to meters per second and rounded to SpeedEqualityPlaces.
func (s Speed) Equal(other Speed) bool {
	return s.metersPerSecond().Equal(other.metersPerSecond())
}

// Cmp compares s and other in meters per second.
func (s Speed) Cmp(other Speed) int {
	return s.metersPerSecond().Cmp(other.metersPerSecond())
}

// Key returns a string that is identical for equal speeds.
func (s Speed) Key() string {
	return "speed:" + s.metersPerSecond().String()
}

// IsZero reports whether the speed is zero.
func (s Speed) IsZero() bool { return s.distance.amount.IsZero() }

// DistanceAfter returns the distance covered at s over d, in the speed's
// distance unit.
func (s Speed) DistanceAfter(d Duration) Distance {
	elapsed := d.ConvertTo(s.per.unit)
	return New(s.distance.amount.Mul(elapsed.amount), s.distance.unit)
}

// TimeTaken returns the time needed to cover d at s, in the speed's time unit.
// It returns ErrZeroSpeed when s is zero.
func (s Speed) TimeTaken(d Distance) (Duration, error) {
	if s.IsZero() {
		return Duration{}, ErrZeroSpeed
	}
	covered := d.ConvertTo(s.distance.unit)
	return New(covered.amount.DivRound(s.distance.amount, DivisionScale), s.per.unit), nil
}

// TimeAfter is TimeTaken.
func (s Speed) TimeAfter(d Distance) (Duration, error) { return s.TimeTaken(d) }

// String renders the amount followed by the unit symbol, e.g. "70mi/h".
func (s Speed) String() string {
	return formatAmount(s.distance.amount) + s.Unit().Short()
}

// LongString is String followed by the unit name, e.g. "70mi/h (Mile per Hour)".
func (s Speed) LongString() string {
	return s.String() + " (" + s.Unit().Long() + ")"
}
