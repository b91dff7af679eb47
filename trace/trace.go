// Package trace provides tracing instrumentation tailored to driver
// session negotiation and command forwarding.
package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "browserkit.webdriver"

// Trace generates a span and a context containing it. If the input context
// already carries a span the new one is its child, otherwise it is a root
// span. The caller must end the returned span.
func Trace(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, opts...)
}

// Session starts a span covering a session lifecycle event such as
// negotiation or teardown.
func Session(ctx context.Context, event, driver string) (context.Context, trace.Span) {
	return Trace(ctx, event, trace.WithAttributes(
		attribute.String("webdriver.driver", driver),
	))
}

// Command starts a span covering one forwarded wire-protocol command.
func Command(ctx context.Context, method, url string) (context.Context, trace.Span) {
	return Trace(ctx, "wire.command", trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("url.full", url),
	))
}

// EndWithError ends the span, recording err on it first when non-nil.
func EndWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SessionID attaches the negotiated session identifier to the span.
func SessionID(span trace.Span, sid string) {
	span.SetAttributes(attribute.String("webdriver.session_id", sid))
}
