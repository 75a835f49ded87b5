package observability

import "context"

// Correlation headers propagated from inbound requests to upstream calls.
const (
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRequestID     = "X-Request-ID"
)

type ctxKey int

const (
	correlationIDKey ctxKey = iota
	requestIDKey
)

// WithCorrelation stores the request's correlation identifiers in the
// context for downstream HTTP clients and log records.
func WithCorrelation(ctx context.Context, correlationID, requestID string) context.Context {
	ctx = context.WithValue(ctx, correlationIDKey, correlationID)
	return context.WithValue(ctx, requestIDKey, requestID)
}

// CorrelationID returns the correlation ID from the context, or "".
func CorrelationID(ctx context.Context) string {
	v, _ := ctx.Value(correlationIDKey).(string)
	return v
}

// RequestID returns the request ID from the context, or "".
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
