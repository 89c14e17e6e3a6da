package observ_test

import (
	"strings"
	"testing"

	"rustle/internal/observ"
)

func TestNilTimerIsInert(t *testing.T) {
	var tm *observ.Timer
	idx := tm.Begin("parse")
	tm.End(idx, "x")
	if idx != -1 {
		t.Fatalf("idx = %d", idx)
	}
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("report = %+v", r)
	}
}

func TestSummaryListsPhasesInOrder(t *testing.T) {
	tm := observ.NewTimer()
	tm.End(tm.Begin("parse"), "diags=0")
	tm.End(tm.Begin("eval"), "")
	s := tm.Summary()
	p, e := strings.Index(s, "parse"), strings.Index(s, "eval")
	if p < 0 || e < p || !strings.Contains(s, "// diags=0") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
	if n := len(tm.Report().Phases); n != 2 {
		t.Fatalf("phases = %d", n)
	}
}
