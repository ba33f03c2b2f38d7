package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors:
//   - ErrNotFound: no entry for the key
//   - ErrUnavailable: backing store or broker cannot be reached
//
// Validation failures such as an unknown unit use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrClosed      = errors.New("closed")
)
