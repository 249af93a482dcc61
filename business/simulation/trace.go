package simulation

import "context"

// requestIDKey is private so only this package can set or read the ID.
type requestIDKey struct{}

// WithTraceID attaches the request ID that simulation log lines carry as
// trace_id. An empty id leaves ctx unchanged.
func WithTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// TraceIDFromContext is "" when no ID was attached.
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
