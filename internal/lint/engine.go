// Package lint provides the gate engine: one external lint invocation
// per run, with the tool's termination status mapped to a pass/fail
// verdict. It is consumed by both the MCP server and the CLI.
package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/internal/runner"
	"github.com/lintgate/lintgate/internal/toolenv"
)

// CommandRunner executes commands within a workspace.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, cwd string) (*runner.Result, error)
}

// Engine holds shared dependencies for lint runs.
type Engine struct {
	Config *config.Config
	Runner CommandRunner
	Env    toolenv.Env
	Root   string // project root; the target directory is resolved against it
}

// Outcome holds the result of a single lint run. Passed is true exactly
// when the tool exited with status zero; every other termination status
// is a failure, with no distinction by cause.
type Outcome struct {
	RunID    string
	Tool     string
	Target   string
	ExitCode int
	Passed   bool

	Stdout    []byte // the tool's output, untransformed (may be truncated)
	Stderr    []byte
	Truncated bool

	// Issues is a best-effort parse of the tool's stdout. It feeds the
	// report store and inspection; the verdict depends only on ExitCode.
	Issues []report.Issue
}

// Run performs exactly one invocation of the configured lint tool
// against the target directory and waits for it to terminate.
//
// The target directory is validated before anything is launched: a
// missing target fails the run without invoking the tool. A tool that
// cannot be resolved from the environment fails the same way. Both
// surface as ordinary errors; the process-level mapping to a single
// failure exit code happens in the caller.
func (e *Engine) Run(ctx context.Context) (*Outcome, error) {
	tool := e.Config.ToolName()
	target := e.Config.Target()

	dir := target
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(e.Root, target)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("target directory %s: %w", target, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target %s is not a directory", target)
	}

	bin, err := e.Env.Resolve(tool)
	if err != nil {
		return nil, err
	}

	argv := append([]string{bin}, e.Config.Tool.Args...)

	res, err := e.Runner.Run(ctx, argv, target)
	if err != nil {
		return nil, fmt.Errorf("executing %s: %w", tool, err)
	}

	o := &Outcome{
		RunID:     res.RunID,
		Tool:      tool,
		Target:    target,
		ExitCode:  res.ExitCode,
		Passed:    res.ExitCode == 0,
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		Truncated: res.Truncated,
	}
	if !o.Passed {
		o.Issues = ParseIssues(res.Stdout)
	}
	return o, nil
}

// Record converts the outcome into a persistable run record.
func (o *Outcome) Record() *report.Record {
	return &report.Record{
		ID:        o.RunID,
		Tool:      o.Tool,
		Target:    o.Target,
		ExitCode:  o.ExitCode,
		Passed:    o.Passed,
		Truncated: o.Truncated,
		Issues:    o.Issues,
	}
}

// Summary renders a short human-readable report of the outcome.
func (o *Outcome) Summary() string {
	var b strings.Builder

	if o.Passed {
		fmt.Fprintln(&b, "Status: PASS")
		fmt.Fprintf(&b, "Run: %s\n", o.RunID)
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "%s reported no issues.\n", o.Tool)
		return b.String()
	}

	fmt.Fprintln(&b, "Status: FAIL")
	fmt.Fprintf(&b, "Run: %s\n", o.RunID)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%s exited with status %d", o.Tool, o.ExitCode)
	if len(o.Issues) > 0 {
		fmt.Fprintf(&b, " (%d issues)", len(o.Issues))
	}
	fmt.Fprintln(&b)

	for _, is := range o.Issues {
		if is.Code != "" {
			fmt.Fprintf(&b, "  %s:%d:%d: %s %s\n", is.File, is.Line, is.Col, is.Code, is.Message)
		} else {
			fmt.Fprintf(&b, "  %s:%d:%d: %s\n", is.File, is.Line, is.Col, is.Message)
		}
	}
	if o.Truncated {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Output was truncated at the configured size cap.")
	}

	return b.String()
}
