// Package trace records pipeline and evaluator events for rustle.
//
// Tracing is enabled from the command line:
//
//	rustle run --trace=- --trace-level=phase prog.rsl
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event as it happens (file or stderr)
//   - RingTracer: keeps the last N events in memory for dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: nothing is streamed, ring dumps only
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: plus per-file events of a multi-file check
//   - LevelDebug: plus every function call made by the evaluator
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
