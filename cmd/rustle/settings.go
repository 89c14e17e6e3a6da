package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rustle/internal/diag"
	"rustle/internal/diagfmt"
	"rustle/internal/observ"
	"rustle/internal/project"
	"rustle/internal/source"
)

// exitError carries a process exit code without printing anything more;
// the command has already reported what went wrong.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// errDiagnostics means errors were reported as diagnostics.
var errDiagnostics = &exitError{code: 1}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 2
}

// settings merge rustle.toml with command-line flags; flags set
// explicitly win.
type settings struct {
	manifest *project.Manifest

	maxDiagnostics int
	color          bool
	diagFormat     string
	pathMode       diagfmt.PathMode
	quiet          bool
	timer          *observ.Timer
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	s := &settings{}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, err := project.Discover(wd)
	if err != nil {
		return nil, err
	}
	s.manifest = m

	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, err
	}
	if m != nil && m.Diagnostics.Max > 0 && !flags.Changed("max-diagnostics") {
		s.maxDiagnostics = m.Diagnostics.Max
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	if m != nil && !flags.Changed("color") {
		switch m.Diagnostics.Color {
		case project.ColorAlways:
			colorFlag = "on"
		case project.ColorNever:
			colorFlag = "off"
		}
	}
	colorMode, err := parseSwitch("color", colorFlag)
	if err != nil {
		return nil, err
	}
	s.color = colorMode.enabled(os.Stderr)

	if s.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return nil, err
	}
	switch s.diagFormat {
	case "pretty", "plain", "json":
	default:
		return nil, fmt.Errorf("invalid --diag-format value %q (expected pretty|plain|json)", s.diagFormat)
	}

	modeStr, err := flags.GetString("path-mode")
	if err != nil {
		return nil, err
	}
	mode, ok := diagfmt.ParsePathMode(strings.ToLower(modeStr))
	if !ok {
		return nil, fmt.Errorf("invalid --path-mode value %q", modeStr)
	}
	s.pathMode = mode

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, err
	}
	if timings {
		s.timer = observ.NewTimer()
	}
	return s, nil
}

// maxCallDepth returns the manifest value; 0 keeps the evaluator default.
func (s *settings) maxCallDepth() int {
	if s.manifest == nil {
		return 0
	}
	return s.manifest.Run.MaxCallDepth
}

func (s *settings) maxNesting() int {
	if s.manifest == nil {
		return 0
	}
	return s.manifest.Run.MaxNesting
}

// printDiagnostics renders diags in the selected format.
func (s *settings) printDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet) error {
	if len(diags) == 0 {
		return nil
	}
	switch s.diagFormat {
	case "plain":
		return diagfmt.Plain(w, diags, fs)
	case "json":
		return diagfmt.JSON(w, diags, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			Max:              s.maxDiagnostics,
			IncludeNotes:     true,
		})
	default:
		return diagfmt.Pretty(w, diags, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			PathMode:  s.pathMode,
			ShowNotes: true,
		})
	}
}

// printTimings writes the phase summary when --timings is set.
func (s *settings) printTimings(w io.Writer) {
	if s.timer == nil {
		return
	}
	fmt.Fprint(w, s.timer.Summary())
}

// switchMode is an auto|on|off flag value; auto follows the terminal.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on":
		return switchOn, nil
	case "off":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

func (m switchMode) enabled(f *os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}
