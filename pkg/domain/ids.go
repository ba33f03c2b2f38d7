// Package domain holds identifier and enum primitives shared across modules.
package domain

import (
	"github.com/google/uuid"

	dErrors "unitconv/pkg/domain-errors"
)

// ConversionID identifies one recorded conversion.
type ConversionID uuid.UUID

// NewConversionID returns a fresh random ID.
func NewConversionID() ConversionID {
	return ConversionID(uuid.New())
}

func (id ConversionID) String() string {
	return uuid.UUID(id).String()
}

func (id ConversionID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// ParseConversionID parses external input. Empty, malformed, and nil UUIDs
// are rejected with CodeInvalidInput.
func ParseConversionID(s string) (ConversionID, error) {
	if s == "" {
		return ConversionID{}, dErrors.New(dErrors.CodeInvalidInput, "conversion id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return ConversionID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid conversion id")
	}
	if u == uuid.Nil {
		return ConversionID{}, dErrors.New(dErrors.CodeInvalidInput, "conversion id cannot be nil")
	}
	return ConversionID(u), nil
}

// MarshalText lets IDs appear as strings in JSON.
func (id ConversionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ConversionID) UnmarshalText(b []byte) error {
	parsed, err := ParseConversionID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
