// Package units models physical quantities as immutable values tied to a unit.
//
// A Quantity pairs an exact decimal amount with a Unit from one dimension's
// fixed catalog. The dimension is a type parameter, so converting a length
// into a time unit, or comparing a mass with a duration, does not compile:
//
//	d := units.New(decimal.NewFromInt(10), units.Millimeter)
//	d.Equal(units.NewFromInt(1, units.Centimeter)) // true
//	d.ConvertTo(units.Inch).String()               // "0.3937007874015748031496062992i"
//
// Equality is physical: two quantities are equal when their amounts expressed
// in the dimension's base unit (meter, second, kilogram) are equal, whatever
// unit they were created in. Key returns a string that is identical for equal
// quantities and can be used as a map key.
//
// Parsing is total. Catalog.Parse and Catalog.Find report failure with a
// false flag and never panic, so callers decide how to surface bad input.
//
// Speed composes a Distance with a single time unit ("distance per one
// hour") and Acceleration applies a constant rate of change to a Speed.
//
// All values are safe for concurrent use; catalogs are built once during
// package initialisation and never mutated afterwards.
package units
