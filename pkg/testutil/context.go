package testutil

import (
	"net/http"
	"time"

	"unitconv/pkg/requestcontext"
)

// WithRequestID sets the request ID the middleware would attach.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithTime pins the request-scoped clock.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
