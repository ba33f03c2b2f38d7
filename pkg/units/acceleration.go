package units

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrZeroDuration is returned when an acceleration is derived from a speed
// change over no time at all.
var ErrZeroDuration = errors.New("units: acceleration over a zero duration")

// Acceleration is a constant rate of change of speed, held in meters per
// second gained per second.
type Acceleration struct {
	rate decimal.Decimal
}

// AccelerationOf returns an acceleration of metersPerSecondSquared m/s².
func AccelerationOf(metersPerSecondSquared decimal.Decimal) Acceleration {
	return Acceleration{rate: metersPerSecondSquared}
}

// AccelerationPer returns an acceleration that gains change every one unit of
// per, e.g. 10 km/h per second.
func AccelerationPer(change Speed, per Unit[Time]) Acceleration {
	gained := change.ConvertTo(MetersPerSecond).Amount()
	return Acceleration{rate: gained.DivRound(per.ratio, DivisionScale)}
}

// AccelerationOver returns the acceleration that gains change over elapsed.
// It returns ErrZeroDuration when elapsed is zero.
func AccelerationOver(change Speed, elapsed Duration) (Acceleration, error) {
	seconds := elapsed.ConvertTo(Second).Amount()
	if seconds.IsZero() {
		return Acceleration{}, ErrZeroDuration
	}
	gained := change.ConvertTo(MetersPerSecond).Amount()
	return Acceleration{rate: gained.DivRound(seconds, DivisionScale)}, nil
}

// MetersPerSecondSquared returns the rate in m/s².
func (a Acceleration) MetersPerSecondSquared() decimal.Decimal { return a.rate }

// Accelerate returns the speed reached after applying a to initial for d.
// The result is expressed in initial's unit.
func (a Acceleration) Accelerate(initial Speed, d Duration) Speed {
	current := initial.ConvertTo(MetersPerSecond).Amount()
	seconds := d.ConvertTo(Second).Amount()
	reached := current.Add(a.rate.Mul(seconds))
	return NewSpeedIn(reached, MetersPerSecond).ConvertTo(initial.Unit())
}

// Equal reports whether a and other have the same rate.
func (a Acceleration) Equal(other Acceleration) bool { return a.rate.Equal(other.rate) }

// String renders the rate, e.g. "9.81m/s²".
func (a Acceleration) String() string { return formatAmount(a.rate) + "m/s²" }
