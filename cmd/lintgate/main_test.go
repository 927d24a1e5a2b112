package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lintgate/lintgate/internal/lint"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/internal/toolenv"
)

// --- emitRun ---

func TestEmitRun_ToolPassed(t *testing.T) {
	o := &lint.Outcome{RunID: "r", Tool: "flake8", ExitCode: 0, Passed: true}
	var stdout, stderr bytes.Buffer

	code := emitRun(o, nil, &stdout, &stderr, false)
	if code != 0 {
		t.Errorf("exit code = %d, want 0 for tool exit 0", code)
	}
}

func TestEmitRun_NonZeroStatusesCollapseToOne(t *testing.T) {
	// The gate's failure status is fixed at 1 regardless of the
	// tool's own non-zero status.
	for _, toolExit := range []int{1, 2, 42, 127, -1} {
		o := &lint.Outcome{RunID: "r", Tool: "flake8", ExitCode: toolExit}
		var stdout, stderr bytes.Buffer

		code := emitRun(o, nil, &stdout, &stderr, false)
		if code != 1 {
			t.Errorf("exit code = %d for tool exit %d, want 1", code, toolExit)
		}
	}
}

func TestEmitRun_PassthroughVerbatim(t *testing.T) {
	// Tool output must reach the writers byte for byte, with nothing
	// added by the gate, including output without a trailing newline.
	outBytes := []byte("src/a.py:1:1: E999 SyntaxError\nplain trailing line")
	errBytes := []byte("flake8: warning on stderr\n")
	o := &lint.Outcome{
		RunID:    "r",
		Tool:     "flake8",
		ExitCode: 1,
		Stdout:   outBytes,
		Stderr:   errBytes,
	}
	var stdout, stderr bytes.Buffer

	emitRun(o, nil, &stdout, &stderr, false)
	if !bytes.Equal(stdout.Bytes(), outBytes) {
		t.Errorf("stdout = %q, want verbatim %q", stdout.Bytes(), outBytes)
	}
	if !bytes.Equal(stderr.Bytes(), errBytes) {
		t.Errorf("stderr = %q, want verbatim %q", stderr.Bytes(), errBytes)
	}
}

func TestEmitRun_NoOutputOnSilentPass(t *testing.T) {
	o := &lint.Outcome{RunID: "r", Tool: "flake8", ExitCode: 0, Passed: true}
	var stdout, stderr bytes.Buffer

	emitRun(o, nil, &stdout, &stderr, false)
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("stdout/stderr = %q/%q, want empty when the tool printed nothing",
			stdout.Bytes(), stderr.Bytes())
	}
}

func TestEmitRun_ToolUnavailable(t *testing.T) {
	// Scenario: the lint binary is missing from the environment.
	runErr := toolenv.NewErrToolUnavailable("flake8")
	var stdout, stderr bytes.Buffer

	code := emitRun(nil, runErr, &stdout, &stderr, false)
	if code != 1 {
		t.Errorf("exit code = %d, want 1 for unresolvable tool", code)
	}
	if !strings.Contains(stderr.String(), "flake8") {
		t.Errorf("stderr = %q, want to mention the tool", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty on pre-invocation failure", stdout.String())
	}
}

func TestEmitRun_MissingTarget(t *testing.T) {
	// Scenario: the target directory does not exist; the run errors
	// out before the tool is invoked.
	runErr := errors.New("target directory src: no such file or directory")
	var stdout, stderr bytes.Buffer

	code := emitRun(nil, runErr, &stdout, &stderr, false)
	if code != 1 {
		t.Errorf("exit code = %d, want 1 for missing target", code)
	}
	if !strings.Contains(stderr.String(), "target directory") {
		t.Errorf("stderr = %q, want the underlying error", stderr.String())
	}
}

func TestEmitRun_JSON(t *testing.T) {
	o := &lint.Outcome{
		RunID:    "run-9",
		Tool:     "flake8",
		Target:   ".",
		ExitCode: 1,
		Issues:   []report.Issue{{File: "a.py", Line: 1, Col: 1, Code: "E999", Message: "bad"}},
	}
	var stdout, stderr bytes.Buffer

	code := emitRun(o, nil, &stdout, &stderr, true)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	var rec report.Record
	if err := json.Unmarshal(stdout.Bytes(), &rec); err != nil {
		t.Fatalf("output is not a JSON record: %v", err)
	}
	if rec.ID != "run-9" || rec.Passed || len(rec.Issues) != 1 {
		t.Errorf("record = %+v, want the outcome's record", rec)
	}
}

// --- dispatch ---

func TestDispatch(t *testing.T) {
	cases := []struct {
		argv     []string
		wantCmd  string
		wantArgs []string
	}{
		{nil, "run", nil},
		{[]string{"run"}, "run", []string{}},
		{[]string{"run", "-json"}, "run", []string{"-json"}},
		{[]string{"-json"}, "run", []string{"-json"}},
		{[]string{"-v", "-timeout", "5m"}, "run", []string{"-v", "-timeout", "5m"}},
		{[]string{"-h"}, "help", nil},
		{[]string{"--help"}, "help", nil},
		{[]string{"help"}, "help", []string{}},
		{[]string{"mcp", "-http", ":9090"}, "mcp", []string{"-http", ":9090"}},
		{[]string{"version"}, "version", []string{}},
		{[]string{"bogus"}, "bogus", []string{}},
	}
	for _, c := range cases {
		cmd, args := dispatch(c.argv)
		if cmd != c.wantCmd {
			t.Errorf("dispatch(%v) cmd = %q, want %q", c.argv, cmd, c.wantCmd)
		}
		if len(args) != len(c.wantArgs) {
			t.Errorf("dispatch(%v) args = %v, want %v", c.argv, args, c.wantArgs)
			continue
		}
		for i := range args {
			if args[i] != c.wantArgs[i] {
				t.Errorf("dispatch(%v) args = %v, want %v", c.argv, args, c.wantArgs)
				break
			}
		}
	}
}
