package common

import (
	"context"
)

type ctxKey int

const (
	ctxKeySessionID ctxKey = iota
)

// WithSessionID saves the session ID to the context so that log lines and
// trace spans produced further down the call chain can be correlated.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, sid)
}

// GetSessionID returns the session ID from the context, if any.
func GetSessionID(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKeySessionID).(string)
	return sid
}
