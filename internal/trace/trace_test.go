package trace_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/trace"
)

func names(events []trace.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind.String()+" "+ev.Scope.String()+":"+ev.Name)
	}
	return out
}

func TestLevelFiltering(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelPhase)
	drv := trace.Begin(ring, trace.ScopeDriver, "run", 0)
	pass := trace.Begin(ring, trace.ScopePass, "parse", drv.ID())
	call := trace.Begin(ring, trace.ScopeCall, "call:main", pass.ID())
	call.End("")
	pass.End("")
	drv.End("ok")

	want := []string{"begin driver:run", "begin pass:parse", "end pass:parse", "end driver:run"}
	if diff := cmp.Diff(want, names(ring.Snapshot())); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := trace.NewRingTracer(2, trace.LevelDebug)
	for _, n := range []string{"a", "b", "c"} {
		trace.Point(ring, trace.ScopeCall, n, "", 0)
	}
	want := []string{"point call:b", "point call:c"}
	if diff := cmp.Diff(want, names(ring.Snapshot())); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestStreamFormats(t *testing.T) {
	var text, js bytes.Buffer
	tr := trace.NewMultiTracer(trace.LevelDebug,
		trace.NewStreamTracer(&text, trace.LevelDebug, trace.FormatText),
		trace.NewStreamTracer(&js, trace.LevelDebug, trace.FormatNDJSON),
	)
	sp := trace.Begin(tr, trace.ScopePass, "eval", 0).WithExtra("b", "2").WithExtra("a", "1")
	sp.End("done")

	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[1], "← pass:eval (done) {a=1, b=2}") {
		t.Errorf("text output:\n%s", text.String())
	}
	if !strings.Contains(js.String(), `"kind":"end"`) || !strings.Contains(js.String(), `"detail":"done"`) {
		t.Errorf("ndjson output:\n%s", js.String())
	}
}

func TestDisabledTracerIsSilent(t *testing.T) {
	sp := trace.Begin(trace.Nop, trace.ScopeDriver, "run", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Errorf("nop span must be inert")
	}
	if got := trace.FromContext(context.Background()); got != trace.Nop {
		t.Errorf("FromContext without tracer = %v", got)
	}
	ring := trace.NewRingTracer(4, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if trace.FromContext(ctx) != trace.Tracer(ring) {
		t.Errorf("tracer not propagated")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := trace.ParseLevel(s)
		if err != nil || l.String() != s {
			t.Errorf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Errorf("expected error")
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"stream", "ring", "both"} {
		m, err := trace.ParseMode(s)
		if err != nil || m.String() != s {
			t.Errorf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := trace.ParseMode("disk"); err == nil {
		t.Errorf("expected error")
	}
}

func TestDumpRing(t *testing.T) {
	var out bytes.Buffer
	stream := trace.NewStreamTracer(&out, trace.LevelPhase, trace.FormatText)
	if ok, err := trace.DumpRing(stream, &out, trace.FormatText); ok || err != nil {
		t.Fatalf("stream tracer has no ring: %v %v", ok, err)
	}

	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	trace.Begin(tr, trace.ScopeDriver, "run", 0).End("fault")

	var dump bytes.Buffer
	ok, err := trace.DumpRing(tr, &dump, trace.FormatText)
	if !ok || err != nil {
		t.Fatalf("DumpRing = %v, %v", ok, err)
	}
	if got := strings.Count(dump.String(), "driver:run"); got != 2 {
		t.Errorf("dump:\n%s", dump.String())
	}
}

func TestSpanContextNesting(t *testing.T) {
	ring := trace.NewRingTracer(8, trace.LevelDebug)
	outer := trace.Begin(ring, trace.ScopeDriver, "check-files", 0)
	ctx := trace.WithSpanContext(context.Background(), trace.SpanContext{SpanID: outer.ID()})
	trace.Point(ring, trace.ScopeFile, "cache-hit", "a.rsl", trace.CurrentSpan(ctx).SpanID)

	events := ring.Snapshot()
	if len(events) != 2 || events[1].ParentID != outer.ID() {
		t.Fatalf("events = %+v", events)
	}
	if trace.WithSpanContext(ctx, trace.SpanContext{}) != ctx {
		t.Errorf("zero span context must not replace the parent")
	}
}

func TestHeartbeat(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelError)
	hb := trace.StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	hb.Stop()

	events := ring.Snapshot()
	if len(events) == 0 || events[0].Kind != trace.KindHeartbeat || events[0].Detail != "#1" {
		t.Fatalf("events = %+v", events)
	}
	if trace.StartHeartbeat(trace.Nop, time.Millisecond) != nil {
		t.Errorf("heartbeat on a disabled tracer")
	}
}
