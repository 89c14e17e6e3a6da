package rustle_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle"
)

func TestRun(t *testing.T) {
	var live strings.Builder
	res := rustle.Run(context.Background(), `let v = [1, 2, 3]; println(len(v)); v[1] * 21`, rustle.Options{Stdout: &live})
	if !res.OK() {
		t.Fatalf("unexpected diagnostics:\n%s", rustle.FormatDiagnostics(res))
	}
	if res.Value.Kind != rustle.KindInt || res.Value.Int != 42 {
		t.Errorf("value = %v", res.Value)
	}
	if res.Output != "3\n" || live.String() != "3\n" {
		t.Errorf("output = %q, live = %q", res.Output, live.String())
	}
}

func TestRunReportsFirstFailingStage(t *testing.T) {
	res := rustle.Run(context.Background(), `let x = ;`, rustle.Options{})
	if res.OK() || res.Stage != rustle.StageParse {
		t.Fatalf("stage = %v", res.Stage)
	}
	text := rustle.FormatDiagnostics(res)
	if !strings.HasPrefix(text, "error: ") || !strings.Contains(text, "at line 1, column 9") {
		t.Errorf("diagnostics = %q", text)
	}
}

func TestHostBuiltins(t *testing.T) {
	var calls []string
	opts := rustle.Options{Builtins: map[string]rustle.Builtin{
		"shout": func(c *rustle.Call, args []rustle.Value) (rustle.Value, error) {
			calls = append(calls, c.Name)
			if len(args) != 1 || args[0].Kind != rustle.KindStr {
				return rustle.Unit(), errors.New("shout wants one string")
			}
			return rustle.Str(strings.ToUpper(args[0].Str)), nil
		},
		"pair": func(_ *rustle.Call, args []rustle.Value) (rustle.Value, error) {
			return rustle.Vec(args...), nil
		},
	}}

	res := rustle.Run(context.Background(), `pair(shout("hey"), 2)`, opts)
	if !res.OK() {
		t.Fatalf("unexpected diagnostics:\n%s", rustle.FormatDiagnostics(res))
	}
	if got := rustle.Display(res.Value); got != `["HEY", 2]` {
		t.Errorf("value = %s", got)
	}
	if diff := cmp.Diff([]string{"shout"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	res = rustle.Run(context.Background(), `shout(1)`, opts)
	if res.OK() || res.Stage != rustle.StageRuntime {
		t.Fatalf("stage = %v", res.Stage)
	}
	if !strings.Contains(res.Diagnostics[0].Message, "shout wants one string") {
		t.Errorf("message = %q", res.Diagnostics[0].Message)
	}
}

func TestCollectDiagnosticsOnly(t *testing.T) {
	res := rustle.Run(context.Background(), `println("never"); 1 / 0`, rustle.Options{CollectDiagnosticsOnly: true})
	if !res.OK() || res.Output != "" {
		t.Fatalf("ok = %v output = %q", res.OK(), res.Output)
	}
}
