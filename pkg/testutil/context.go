package testutil

import (
	"net/http"

	"tally/pkg/domain"
	"tally/pkg/requestcontext"
)

// WithCaller injects an authenticated caller address into the request
// context, simulating what the auth middleware does for valid tokens.
func WithCaller(req *http.Request, addr domain.Address) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), addr))
}

// AtTick injects a captured logical tick into the request context,
// simulating the tick middleware.
func AtTick(req *http.Request, tick domain.Tick) *http.Request {
	return req.WithContext(requestcontext.WithTick(req.Context(), tick))
}
