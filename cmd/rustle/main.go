package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rustle/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rustle",
	Short: "Rustle scripting language toolchain",
	Long:  `Rustle runs, checks and formats programs written in a small Rust-like scripting language`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanupProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanupTracing, err := setupTracing(cmd)
		if err != nil {
			cleanupProfiling()
			return err
		}
		cleanups = append(cleanups, cleanupTracing, cleanupProfiling)
		return nil
	},
}

// cleanups run in order after the command returns.
var cleanups []func()

func init() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version
	// ошибки печатает exitCode
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("diag-format", "pretty", "diagnostic output format (pretty|plain|json)")
	rootCmd.PersistentFlags().String("path-mode", "auto", "diagnostic path display (auto|absolute|relative|basename)")

	rootCmd.PersistentFlags().String("trace", "", "write pipeline trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for ring trace mode")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command. Reported diagnostics exit with status 1,
// other failures with status 2.
func main() {
	if err := execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func execute() error {
	err := rootCmd.Execute()
	if err != nil {
		dumpTraceOnFailure(rootCmd.ErrOrStderr())
	}
	for _, fn := range cleanups {
		fn()
	}
	cleanups = nil
	return err
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
