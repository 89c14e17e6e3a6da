package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rustle/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format rustle source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:          check,
		MaxDiagnostics: st.maxDiagnostics,
		Stdout:         writeToStdout,
	})
	if err != nil {
		return err
	}

	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
	}

	switch outputFormat {
	case "text":
		if err := renderFmtText(out, stderr, st, results, check, writeToStdout); err != nil {
			return err
		}
	case "json":
		if err := renderFmtJSON(out, results, check); err != nil {
			return err
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors || (check && hasChanges) {
		return errDiagnostics
	}
	return nil
}

func renderFmtText(out, stderr io.Writer, st *settings, results []driver.FormatResult, check, toStdout bool) error {
	for _, res := range results {
		if res.Err != nil {
			if len(res.Diagnostics) > 0 {
				if err := st.printDiagnostics(stderr, res.Diagnostics, res.FileSet); err != nil {
					return err
				}
			}
			fmt.Fprintf(stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		switch {
		case toStdout:
			if _, err := out.Write(res.Formatted); err != nil {
				return err
			}
		case check && res.Changed:
			if !st.quiet {
				fmt.Fprintln(out, res.Path)
			}
		case res.Changed && !st.quiet:
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
	return nil
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
