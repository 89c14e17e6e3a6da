package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rustle/internal/driver"
	"rustle/internal/format"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rsl",
	Short: "Parse a file and print its canonical source",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Int("indent", 4, "indent width of the printed source")
	parseCmd.Flags().Bool("tabs", false, "indent with tabs")
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return err
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	idx := st.timer.Begin("parse")
	res, err := driver.Parse(args[0], driver.Options{
		MaxDiagnostics: st.maxDiagnostics,
		MaxNesting:     st.maxNesting(),
	})
	st.timer.End(idx, "")
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	defer st.printTimings(cmd.ErrOrStderr())

	if err := st.printDiagnostics(cmd.ErrOrStderr(), res.Bag.Items(), res.FileSet); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}

	out, err := format.FormatFile(res.Builder, res.FileID, format.Options{IndentWidth: indent, UseTabs: tabs})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
