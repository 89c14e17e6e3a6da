package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// SpanContext identifies the span that new spans should nest under.
type SpanContext struct {
	SpanID uint64
}

// FromContext returns the tracer attached by WithTracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches t; a nil t detaches tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// CurrentSpan returns the span set by WithSpanContext. The zero value means
// "no parent".
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}

// WithSpanContext makes sc the parent of spans begun under ctx. Span 0 is
// not recorded.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if sc.SpanID == 0 {
		return ctx
	}
	return context.WithValue(ctx, spanKey{}, sc)
}
