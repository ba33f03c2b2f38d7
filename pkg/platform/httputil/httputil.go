// Package httputil holds the JSON response and request helpers shared by handlers.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "unitconv/pkg/domain-errors"
)

// maxBodyBytes caps request bodies; conversion payloads are tiny.
const maxBodyBytes = 64 << 10

// Validatable is implemented by request bodies decoded with DecodeAndPrepare.
type Validatable interface {
	Validate() error
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to a status code and JSON body.
// Internal errors never leak their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := errorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		if de, ok := dErrors.As(err); ok {
			resp.ErrorDescription = de.Message
		}
	}
	WriteJSON(w, StatusFor(code), resp)
}

// StatusFor returns the HTTP status for a domain error code.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnsupported, dErrors.CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes a JSON body into T and runs its Validate method.
// On failure it writes the error response and returns ok=false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return nil, false
	}
	if err := PT(&req).Validate(); err != nil {
		logger.WarnContext(ctx, "request validation failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}
