package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"rustle/internal/driver"
	"rustle/internal/history"
	"rustle/internal/repl"
	"rustle/internal/version"
)

const (
	promptMain = "rsl> "
	promptCont = "...  "

	historyLoad = 500
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().Bool("no-history", false, "do not read or write the persistent history")
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	var store *history.Store
	if !noHistory {
		store = openHistory(ln, stderr)
		if store != nil {
			defer store.Close()
		}
	}

	if stdinIsTerminal() && !st.quiet {
		fmt.Fprint(out, version.Banner(st.color))
		fmt.Fprintln(out, "type :help for commands")
	}

	valueColor := color.New(color.FgCyan)
	if !st.color {
		valueColor.DisableColor()
	}

	session := repl.NewSession(driver.Options{
		MaxCallDepth:   st.maxCallDepth(),
		MaxDiagnostics: st.maxDiagnostics,
		MaxNesting:     st.maxNesting(),
	})

	for {
		input, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if store != nil {
			if _, err := store.Add(input); err != nil {
				fmt.Fprintf(stderr, "history: %v\n", err)
			}
		}

		if strings.HasPrefix(trimmed, ":") {
			if quit := replCommand(out, session, store, trimmed); quit {
				return nil
			}
			continue
		}

		reply := session.Eval(cmd.Context(), input)
		fmt.Fprint(out, reply.Output)
		if reply.Output != "" && !strings.HasSuffix(reply.Output, "\n") {
			fmt.Fprintln(out)
		}
		if !reply.OK() {
			if err := st.printDiagnostics(stderr, reply.Result.Diagnostics, reply.Result.FileSet); err != nil {
				return err
			}
			continue
		}
		if reply.Value != "" {
			valueColor.Fprintln(out, reply.Value)
		}
	}
}

// openHistory loads recent entries into the line editor. Failures only
// disable persistence.
func openHistory(ln *liner.State, stderr io.Writer) *history.Store {
	path, err := history.DefaultPath("rustle")
	if err != nil {
		fmt.Fprintf(stderr, "history disabled: %v\n", err)
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "history disabled: %v\n", err)
		return nil
	}
	entries, err := store.Last(historyLoad)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
	}
	for _, e := range entries {
		ln.AppendHistory(strings.ReplaceAll(e.Text, "\n", " "))
	}
	return store
}

func replCommand(out io.Writer, session *repl.Session, store *history.Store, line string) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(out, ":quit          leave the session")
		fmt.Fprintln(out, ":reset         forget every definition")
		fmt.Fprintln(out, ":source        print the accepted program")
		fmt.Fprintln(out, ":history [n]   show the last n stored inputs")
		fmt.Fprintln(out, ":find prefix   show the newest stored input starting with prefix")
	case ":reset":
		session.Reset()
	case ":source":
		if src := session.Source(); src != "" {
			fmt.Fprintln(out, src)
		}
	case ":history":
		if store == nil {
			fmt.Fprintln(out, "history is disabled")
			return false
		}
		n := 20
		if len(fields) > 1 {
			if v, err := strconv.Atoi(fields[1]); err == nil && v > 0 {
				n = v
			}
		}
		entries, err := store.Last(n)
		if err != nil {
			fmt.Fprintf(out, "history: %v\n", err)
			return false
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%5d  %s\n", e.Seq, e.Text)
		}
	case ":find":
		if store == nil || len(fields) < 2 {
			fmt.Fprintln(out, "usage: :find prefix (history must be enabled)")
			return false
		}
		prefix := strings.TrimSpace(strings.TrimPrefix(line, ":find"))
		e, err := store.PrevWithPrefix(math.MaxInt32, prefix)
		if errors.Is(err, history.ErrNoMatchingCmd) {
			fmt.Fprintln(out, "no match")
			return false
		}
		if err != nil {
			fmt.Fprintf(out, "history: %v\n", err)
			return false
		}
		fmt.Fprintf(out, "%5d  %s\n", e.Seq, e.Text)
	default:
		fmt.Fprintf(out, "unknown command %s, type :help\n", fields[0])
	}
	return false
}

// readByParseProbe reads lines until the collected text no longer stops
// inside an open delimiter. ok is false at end of input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// ctrl+c сбрасывает незаконченный ввод
			b.Reset()
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !repl.Incomplete(src) {
			return src, true
		}
	}
}
