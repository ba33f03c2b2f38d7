package domain

import (
	"strings"

	dErrors "unitconv/pkg/domain-errors"
)

// Kind names a family of quantities a request may target.
// Invariant: the value is one of the supported kinds.
//
// Construct via ParseKind at trust boundaries; direct casting bypasses validation.
type Kind string

const (
	KindLength Kind = "length"
	KindTime   Kind = "time"
	KindMass   Kind = "mass"
	KindSpeed  Kind = "speed"
)

// Kinds lists the supported kinds in display order.
var Kinds = []Kind{KindLength, KindTime, KindMass, KindSpeed}

var kindAliases = map[string]Kind{
	"length":   KindLength,
	"distance": KindLength,
	"time":     KindTime,
	"duration": KindTime,
	"mass":     KindMass,
	"weight":   KindMass,
	"speed":    KindSpeed,
	"velocity": KindSpeed,
}

// ParseKind accepts a kind name or a common synonym, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "dimension cannot be empty")
	}
	k, ok := kindAliases[strings.ToLower(s)]
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported dimension "+strings.ToLower(s))
	}
	return k, nil
}

func (k Kind) IsValid() bool {
	switch k {
	case KindLength, KindTime, KindMass, KindSpeed:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }
