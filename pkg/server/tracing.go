package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/quicktip/pkg/protocol"
)

// Default tracer name for quicktip servers.
const defaultTracerName = "quicktip"

// defaultTracer resolves the tracer from the global provider. Configure the
// provider in main() before creating the server:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func defaultTracer() trace.Tracer {
	return otel.Tracer(defaultTracerName)
}

// startFrameSpan starts the span covering one client frame.
func (s *Session) startFrameSpan(ft protocol.FrameType) (context.Context, trace.Span) {
	return s.tracer.Start(context.Background(), "quicktip.frame."+ft.String(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("quicktip.session_id", s.ID),
			attribute.String("quicktip.frame_type", ft.String()),
		),
	)
}

// endSpan records err, if any, and ends span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
