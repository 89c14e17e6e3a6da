package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rustle/internal/driver"
	"rustle/internal/value"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.rsl]",
	Short: "Execute a rustle program",
	Long: `Run lexes, parses, resolves and evaluates a program. Without a file
argument the [run].main entry of rustle.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	runCmd.Flags().Int("max-call-depth", 0, "maximum call depth (0 uses rustle.toml or the default)")
	runCmd.Flags().Bool("check-only", false, "stop after name resolution")
	runCmd.Flags().Bool("stats", false, "print evaluation statistics to stderr")
}

func runProgram(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		path = st.manifest.MainPath()
	}
	if path == "" {
		return errors.New("run: no file given and no [run].main in rustle.toml")
	}

	depth, err := cmd.Flags().GetInt("max-call-depth")
	if err != nil {
		return err
	}
	if depth == 0 {
		depth = st.maxCallDepth()
	}
	checkOnly, err := cmd.Flags().GetBool("check-only")
	if err != nil {
		return err
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return err
	}

	res, err := driver.RunFile(cmd.Context(), path, driver.Options{
		MaxCallDepth:           depth,
		CollectDiagnosticsOnly: checkOnly,
		MaxDiagnostics:         st.maxDiagnostics,
		MaxNesting:             st.maxNesting(),
		Stdout:                 cmd.OutOrStdout(),
		Timer:                  st.timer,
	})
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if err := st.printDiagnostics(stderr, res.Diagnostics, res.FileSet); err != nil {
		return err
	}
	st.printTimings(stderr)
	if showStats {
		fmt.Fprintf(stderr, "calls=%d max_depth=%d refs=%d\n", res.Stats.Calls, res.Stats.MaxDepth, res.Stats.Refs)
	}
	if !res.OK() {
		return errDiagnostics
	}
	if res.Value.Kind != value.KindUnit && !st.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), res.Printed)
	}
	return nil
}

// stdinIsTerminal reports whether the REPL talks to a person.
func stdinIsTerminal() bool { return isTerminal(os.Stdin) }
