package testutil

import (
	"net/http"
	"time"

	"govdesk/pkg/requestcontext"
)

// WithClock pins the request clock, as the RequestTime middleware would.
func WithClock(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID attaches a request id to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
