// Package models holds the conversion module's request and result types.
package models

import (
	"time"

	id "unitconv/pkg/domain"
)

// UnitInfo describes one catalog entry. Ratio is the multiplier into the
// dimension's base unit (meter, second, kilogram, meters per second).
type UnitInfo struct {
	Short   string   `json:"short"`
	Long    string   `json:"long"`
	Aliases []string `json:"aliases,omitempty"`
	Ratio   string   `json:"ratio"`
}

// ConvertRequest asks for one value expressed in each target unit. No
// targets means every unit of the dimension.
type ConvertRequest struct {
	Kind    id.Kind
	Value   string
	Targets []string
}

// Conversion is the value expressed in one target unit.
type Conversion struct {
	Target string `json:"target"`
	Result string `json:"result"`
	Long   string `json:"long"`
}

type ConvertResult struct {
	Kind        id.Kind      `json:"dimension"`
	Input       string       `json:"input"`
	Conversions []Conversion `json:"conversions"`
}

type CompareRequest struct {
	Kind  id.Kind
	Left  string
	Right string
}

// CompareResult reports physical equality and ordering of two quantities.
// Cmp is -1, 0 or 1 for left below, equal to, or above right.
type CompareResult struct {
	Kind  id.Kind `json:"dimension"`
	Left  string  `json:"left"`
	Right string  `json:"right"`
	Equal bool    `json:"equal"`
	Cmp   int     `json:"cmp"`
}

// TravelRequest carries a speed and exactly one of Duration or Distance.
type TravelRequest struct {
	Speed    string
	Duration string
	Distance string
}

// TravelResult holds the derived quantity: Distance when a duration was
// given, Duration when a distance was given.
type TravelResult struct {
	Speed    string `json:"speed"`
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

// AccelerateRequest applies Rate, in meters per second squared, to Speed
// for Duration.
type AccelerateRequest struct {
	Speed    string
	Rate     string
	Duration string
}

type AccelerateResult struct {
	Initial string `json:"initial"`
	Rate    string `json:"rate"`
	Final   string `json:"final"`
	Long    string `json:"long"`
}

// Record is one conversion kept in history.
type Record struct {
	ID        id.ConversionID `json:"id"`
	Kind      id.Kind         `json:"dimension"`
	Input     string          `json:"input"`
	Target    string          `json:"target"`
	Result    string          `json:"result"`
	RequestID string          `json:"request_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
