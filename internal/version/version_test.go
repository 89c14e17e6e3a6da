package version

import (
	"strings"
	"testing"
)

func TestColoredWithoutColorIsPlain(t *testing.T) {
	if got := Colored(false); got != Version {
		t.Errorf("Colored(false) = %q, want %q", got, Version)
	}
}

func TestColoredKeepsDigits(t *testing.T) {
	got := Colored(true)
	for _, part := range []string{"0", "1", "-dev"} {
		if !strings.Contains(got, part) {
			t.Errorf("Colored(true) = %q lacks %q", got, part)
		}
	}
}

func TestBannerOverrides(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	b := Banner(false)
	for _, want := range []string{"rustle 1.2.3 (", "commit: abc123def456", "built:  2024-01-15T10:30:00Z"} {
		if !strings.Contains(b, want) {
			t.Errorf("banner %q lacks %q", b, want)
		}
	}
}

func TestUnusualVersionPassesThrough(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Errorf("got %q", got)
	}
}
