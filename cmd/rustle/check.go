package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"rustle/internal/driver"
	"rustle/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Report diagnostics for rustle files without running them",
	Long: `Check lexes, parses and resolves every .rsl file under the given paths
in parallel. Results are cached on disk by content and options.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().Int("jobs", 0, "number of files checked at once (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop every cached result before checking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiMode, err := parseSwitch("ui", uiFlag)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		root := "."
		if st.manifest != nil {
			root = st.manifest.Root
		}
		args = []string{root}
	}
	files, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("check: no %s files found", driver.SourceExt)
	}

	var cache *driver.Cache
	if !noCache {
		cache, err = driver.OpenCache("rustle")
		if err != nil {
			// без кэша всё работает, только медленнее
			fmt.Fprintf(cmd.ErrOrStderr(), "check: cache disabled: %v\n", err)
			cache = nil
		}
	}
	if clearCache && cache != nil {
		if err := cache.DropAll(); err != nil {
			return err
		}
	}

	opts := driver.CheckFilesOptions{
		Options: driver.Options{
			MaxDiagnostics: st.maxDiagnostics,
			MaxNesting:     st.maxNesting(),
		},
		Jobs:  jobs,
		Cache: cache,
	}

	idx := st.timer.Begin("check")
	var results []*driver.CheckResult
	if uiMode.enabled(os.Stdout) {
		results, err = checkWithUI(cmd.Context(), files, opts)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), files, opts)
	}
	st.timer.End(idx, fmt.Sprintf("files=%d", len(files)))
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	failed, cached := 0, 0
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Err != nil {
			failed++
			fmt.Fprintf(stderr, "check: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Cached {
			cached++
		}
		if !res.OK() {
			failed++
		}
		if err := st.printDiagnostics(stderr, res.Diagnostics, res.FileSet); err != nil {
			return err
		}
	}
	st.printTimings(stderr)
	if !st.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files: %d failed, %d cached\n", len(results), failed, cached)
	}
	if failed > 0 {
		return errDiagnostics
	}
	return nil
}

func expandPaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := driver.ListFiles(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

type checkOutcome struct {
	results []*driver.CheckResult
	err     error
}

// checkWithUI runs CheckFiles behind the Bubble Tea progress view.
func checkWithUI(ctx context.Context, files []string, opts driver.CheckFilesOptions) ([]*driver.CheckResult, error) {
	events := make(chan driver.CheckEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckFiles(ctx, files, optsCopy)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("rustle check", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после ctrl+c модель больше не читает события
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
