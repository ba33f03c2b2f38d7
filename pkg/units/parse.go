package units

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const numberPattern = `[+-]?(?:(?:[1-9][0-9]*)?[0-9](?:\.[0-9]*)?|\.[0-9]+)`

var (
	quantityPattern = regexp.MustCompile(`^(` + numberPattern + `)[ \t]*(\w+)$`)
	speedPattern    = regexp.MustCompile(`^(` + numberPattern + `)[ \t]*(\w+(?:[ \t]*/[ \t]*\w+)?)$`)
)

// Parse reads text of the form "<number><unit>" such as "10mm", "10 mm" or
// "-.5 Kilometer". Surrounding whitespace is ignored and spaces or tabs may
// separate the number from the unit. It reports false when text does not
// match that form or the unit is not in the catalog.
func (c Catalog[D]) Parse(text string) (Quantity[D], bool) {
	number, unitName, ok := splitQuantity(quantityPattern, text)
	if !ok {
		return Quantity[D]{}, false
	}
	amount, ok := parseAmount(number)
	if !ok {
		return Quantity[D]{}, false
	}
	unit, ok := c.Find(unitName)
	if !ok {
		return Quantity[D]{}, false
	}
	return New(amount, unit), true
}

// MustParse is Parse for inputs known to be valid. It panics on failure.
func (c Catalog[D]) MustParse(text string) Quantity[D] {
	q, ok := c.Parse(text)
	if !ok {
		panic("units: cannot parse " + DimensionName[D]() + " " + strconv.Quote(text))
	}
	return q
}

// ParseUnit looks up a unit by name after trimming surrounding whitespace.
func (c Catalog[D]) ParseUnit(text string) (Unit[D], bool) {
	return c.Find(strings.TrimSpace(text))
}

// TryParse parses text against catalog. It is the generic form behind
// ParseDistance, ParseDuration and ParseWeight.
func TryParse[D Dimension](text string, catalog Catalog[D]) (Quantity[D], bool) {
	return catalog.Parse(text)
}

// ParseDistance parses a length quantity such as "12 ft".
func ParseDistance(text string) (Distance, bool) { return lengths.Parse(text) }

// ParseDuration parses a time quantity such as "90s".
func ParseDuration(text string) (Duration, bool) { return times.Parse(text) }

// ParseWeight parses a mass quantity such as "250g".
func ParseWeight(text string) (Weight, bool) { return masses.Parse(text) }

// ParseLengthUnit looks up a length unit by name.
func ParseLengthUnit(text string) (Unit[Length], bool) { return lengths.ParseUnit(text) }

// ParseTimeUnit looks up a time unit by name.
func ParseTimeUnit(text string) (Unit[Time], bool) { return times.ParseUnit(text) }

// ParseMassUnit looks up a mass unit by name.
func ParseMassUnit(text string) (Unit[Mass], bool) { return masses.ParseUnit(text) }

func splitQuantity(pattern *regexp.Regexp, text string) (number, unit string, ok bool) {
	m := pattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// parseAmount converts a string accepted by numberPattern into a decimal.
// The grammar allows forms like "+5", ".5" and "5." that are normalised first.
func parseAmount(number string) (decimal.Decimal, bool) {
	neg := false
	switch {
	case strings.HasPrefix(number, "+"):
		number = number[1:]
	case strings.HasPrefix(number, "-"):
		neg = true
		number = number[1:]
	}
	number = strings.TrimSuffix(number, ".")
	if strings.HasPrefix(number, ".") {
		number = "0" + number
	}
	d, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}
