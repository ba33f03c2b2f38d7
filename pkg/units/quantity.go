package units

import (
	"github.com/shopspring/decimal"
)

// DivisionScale is the number of decimal places kept by every division the
// package performs. Multiplications are exact.
const DivisionScale int32 = 28

// Quantity is an immutable amount of dimension D expressed in a unit of D.
type Quantity[D Dimension] struct {
	amount decimal.Decimal
	unit   Unit[D]
}

// Quantities of the supported dimensions.
type (
	Distance = Quantity[Length]
	Duration = Quantity[Time]
	Weight   = Quantity[Mass]
)

// New returns amount expressed in unit. Any amount is accepted, including
// zero and negative values.
func New[D Dimension](amount decimal.Decimal, unit Unit[D]) Quantity[D] {
	return Quantity[D]{amount: amount, unit: unit}
}

// NewFromInt is New for an integer amount.
func NewFromInt[D Dimension](amount int64, unit Unit[D]) Quantity[D] {
	return New(decimal.NewFromInt(amount), unit)
}

// NewFromFloat is New for a float amount, taken at its shortest exact
// decimal representation.
func NewFromFloat[D Dimension](amount float64, unit Unit[D]) Quantity[D] {
	return New(decimal.NewFromFloat(amount), unit)
}

// NewFromString is New for an amount written in decimal notation. It returns
// an error when amount is not a number.
func NewFromString[D Dimension](amount string, unit Unit[D]) (Quantity[D], error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Quantity[D]{}, err
	}
	return New(d, unit), nil
}

// Amount returns the amount in the quantity's own unit.
func (q Quantity[D]) Amount() decimal.Decimal { return q.amount }

// Unit returns the unit the amount is expressed in.
func (q Quantity[D]) Unit() Unit[D] { return q.unit }

// base returns the amount expressed in D's base unit. It is the canonical
// representative used for equality and ordering.
func (q Quantity[D]) base() decimal.Decimal {
	return q.amount.Mul(q.unit.ratio)
}

// ConvertTo returns the same physical quantity expressed in target.
// Precondition: target is a catalog unit (its ratio is non-zero).
func (q Quantity[D]) ConvertTo(target Unit[D]) Quantity[D] {
	if q.unit.Equal(target) {
		return q
	}
	return New(q.base().DivRound(target.ratio, DivisionScale), target)
}

// Equal reports whether q and other denote the same physical quantity.
func (q Quantity[D]) Equal(other Quantity[D]) bool {
	return q.base().Equal(other.base())
}

// Cmp compares q and other physically, returning -1, 0 or +1.
func (q Quantity[D]) Cmp(other Quantity[D]) int {
	return q.base().Cmp(other.base())
}

// Key returns a string that is identical for equal quantities of the same
// dimension. Use it where a hashable identity is needed.
func (q Quantity[D]) Key() string {
	return DimensionName[D]() + ":" + q.base().String()
}

// Add returns q + other, in q's unit.
func (q Quantity[D]) Add(other Quantity[D]) Quantity[D] {
	return New(q.amount.Add(other.ConvertTo(q.unit).amount), q.unit)
}

// Sub returns q - other, in q's unit.
func (q Quantity[D]) Sub(other Quantity[D]) Quantity[D] {
	return New(q.amount.Sub(other.ConvertTo(q.unit).amount), q.unit)
}

// Neg returns -q.
func (q Quantity[D]) Neg() Quantity[D] { return New(q.amount.Neg(), q.unit) }

// IsZero reports whether the amount is zero.
func (q Quantity[D]) IsZero() bool { return q.amount.IsZero() }

// Round returns q with its amount rounded half away from zero to places
// decimal places.
func (q Quantity[D]) Round(places int32) Quantity[D] {
	return New(q.amount.Round(places), q.unit)
}

// String renders the amount directly followed by the unit's short name, e.g.
// "10mm". Trailing fractional zeros are dropped and exponent notation is
// never used.
func (q Quantity[D]) String() string {
	return formatAmount(q.amount) + q.unit.short
}

// LongString is String followed by the unit's long name, e.g. "10mm (Millimeter)".
func (q Quantity[D]) LongString() string {
	return q.String() + " (" + q.unit.long + ")"
}

func formatAmount(d decimal.Decimal) string {
	return d.String()
}
