// Package requestctx carries per-request values across middleware and
// handler boundaries without leaking the context keys.
package requestctx

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID returns a child context carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request id set by the request-id middleware, or
// the empty string outside a request.
func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}
