package ui

import (
	"strings"
	"testing"

	"rustle/internal/driver"
)

func TestApplyEventsUpdatesRows(t *testing.T) {
	events := make(chan driver.CheckEvent)
	m := NewProgressModel("checking", []string{"a.rsl", "b.rsl"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.rsl", Status: driver.StatusWorking})
	if got := m.fraction(); got != 0.25 {
		t.Errorf("fraction = %v", got)
	}
	m.Update(eventMsg{File: "a.rsl", Status: driver.StatusError, Diagnostics: 2})
	m.Update(eventMsg{File: "b.rsl", Status: driver.StatusCached})
	m.Update(eventMsg{File: "unknown.rsl", Status: driver.StatusDone})
	if m.finished() != 2 || m.fraction() != 1 {
		t.Errorf("finished %d fraction %v", m.finished(), m.fraction())
	}

	view := m.View()
	for _, want := range []string{"checking (2/2)", "a.rsl (2)", "cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Error("doneMsg did not finish the model")
	}
	if !strings.HasPrefix(stripANSI(m.View()), "done: ") {
		t.Errorf("view after done:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.rsl", 20, "short.rsl"},
		{"a/very/long/path/to/file.rsl", 10, "a/ve..."},
		{"日本語.rsl", 3, "日"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			skip = false
		case !skip:
			b.WriteRune(r)
		}
	}
	return b.String()
}
