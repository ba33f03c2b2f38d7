package handler

import (
	"strings"

	"unitconv/internal/conversion/models"
	"unitconv/internal/conversion/service"
	id "unitconv/pkg/domain"
	dErrors "unitconv/pkg/domain-errors"
)

const maxValueLength = 64

// ConvertRequest is the HTTP request body for POST /convert.
type ConvertRequest struct {
	Dimension string   `json:"dimension"`
	Value     string   `json:"value"`
	Targets   []string `json:"targets,omitempty"`

	kind id.Kind
}

// Validate trims and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ConvertRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Targets) > service.MaxTargets {
		return dErrors.New(dErrors.CodeValidation, "too many targets")
	}
	kind, err := id.ParseKind(r.Dimension)
	if err != nil {
		return err
	}
	r.kind = kind
	r.Value, err = requiredValue("value", r.Value)
	return err
}

func (r *ConvertRequest) toModel() models.ConvertRequest {
	return models.ConvertRequest{Kind: r.kind, Value: r.Value, Targets: r.Targets}
}

// CompareRequest is the HTTP request body for POST /compare.
type CompareRequest struct {
	Dimension string `json:"dimension"`
	Left      string `json:"left"`
	Right     string `json:"right"`

	kind id.Kind
}

func (r *CompareRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	kind, err := id.ParseKind(r.Dimension)
	if err != nil {
		return err
	}
	r.kind = kind
	if r.Left, err = requiredValue("left", r.Left); err != nil {
		return err
	}
	r.Right, err = requiredValue("right", r.Right)
	return err
}

func (r *CompareRequest) toModel() models.CompareRequest {
	return models.CompareRequest{Kind: r.kind, Left: r.Left, Right: r.Right}
}

// TravelRequest is the HTTP request body for POST /speed/travel. Exactly one
// of Duration or Distance is set.
type TravelRequest struct {
	Speed    string `json:"speed"`
	Duration string `json:"duration,omitempty"`
	Distance string `json:"distance,omitempty"`
}

func (r *TravelRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var err error
	if r.Speed, err = requiredValue("speed", r.Speed); err != nil {
		return err
	}
	r.Duration = strings.TrimSpace(r.Duration)
	r.Distance = strings.TrimSpace(r.Distance)
	if (r.Duration == "") == (r.Distance == "") {
		return dErrors.New(dErrors.CodeValidation, "exactly one of duration or distance is required")
	}
	return nil
}

func (r *TravelRequest) toModel() models.TravelRequest {
	return models.TravelRequest{Speed: r.Speed, Duration: r.Duration, Distance: r.Distance}
}

// AccelerateRequest is the HTTP request body for POST /speed/accelerate.
// Rate is in meters per second squared.
type AccelerateRequest struct {
	Speed    string `json:"speed"`
	Rate     string `json:"rate"`
	Duration string `json:"duration"`
}

func (r *AccelerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var err error
	if r.Speed, err = requiredValue("speed", r.Speed); err != nil {
		return err
	}
	if r.Rate, err = requiredValue("rate", r.Rate); err != nil {
		return err
	}
	r.Duration, err = requiredValue("duration", r.Duration)
	return err
}

func (r *AccelerateRequest) toModel() models.AccelerateRequest {
	return models.AccelerateRequest{Speed: r.Speed, Rate: r.Rate, Duration: r.Duration}
}

func requiredValue(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	if len(v) > maxValueLength {
		return "", dErrors.New(dErrors.CodeValidation, field+" is too long")
	}
	return v, nil
}
