// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services read them without importing
// net/http. Tests inject them directly:
//
//	ctx = requestcontext.WithCaller(ctx, "acct-owner")
//	ctx = requestcontext.WithTick(ctx, 150)
package requestcontext

import (
	"context"

	"tally/pkg/domain"
)

type (
	callerKey    struct{}
	requestIDKey struct{}
	tickKey      struct{}
)

// Caller retrieves the authenticated caller address from the context.
// Returns the empty address if not set.
func Caller(ctx context.Context) domain.Address {
	if addr, ok := ctx.Value(callerKey{}).(domain.Address); ok {
		return addr
	}
	return ""
}

// WithCaller injects the authenticated caller address into the context.
func WithCaller(ctx context.Context, addr domain.Address) context.Context {
	return context.WithValue(ctx, callerKey{}, addr)
}

// RequestID retrieves the request correlation id from the context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request correlation id into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Tick retrieves the request-scoped logical tick. The second return is false
// when no tick was captured (non-HTTP contexts without WithTick).
func Tick(ctx context.Context) (domain.Tick, bool) {
	if t, ok := ctx.Value(tickKey{}).(domain.Tick); ok {
		return t, true
	}
	return 0, false
}

// TickOr retrieves the request-scoped tick, falling back to the given clock
// when none was captured.
func TickOr(ctx context.Context, fallback interface{ Tick() domain.Tick }) domain.Tick {
	if t, ok := Tick(ctx); ok {
		return t
	}
	return fallback.Tick()
}

// WithTick injects a logical tick into the context. Middleware captures the
// tick once per request so all components observe one consistent value
// within an invocation.
func WithTick(ctx context.Context, t domain.Tick) context.Context {
	return context.WithValue(ctx, tickKey{}, t)
}
