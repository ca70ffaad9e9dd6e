package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// DetachTraceContextFrom copies the trace span from src into baseCtx.
// Session goroutines started from an MCP tool call inherit the server's
// shutdown cancellation (baseCtx) while their spans stay linked to the
// originating request (src), whose context dies when the response is sent.
func DetachTraceContextFrom(src, baseCtx context.Context) context.Context {
	sc := trace.SpanContextFromContext(src)
	if !sc.IsValid() {
		return baseCtx
	}
	return trace.ContextWithRemoteSpanContext(baseCtx, sc)
}
