package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/lintgate/lintgate/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inspectParams struct {
	RunID string `json:"run_id" jsonschema:"the run ID from a lint_run result"`
	File  string `json:"file,omitempty" jsonschema:"scope the findings to one file path as reported by the tool. Omit for all findings."`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	issues := rec.Issues
	if params.File != "" {
		issues = rec.ByFile(params.File)
	}

	if len(issues) == 0 {
		scope := ""
		if params.File != "" {
			scope = " for " + params.File
		}
		return textResult(fmt.Sprintf("No findings%s in run %s (%s, exit %d).", scope, rec.ID, rec.Tool, rec.ExitCode))
	}

	return textResult(formatInspectOutput(rec, params.File, issues))
}

func formatInspectOutput(rec *report.Record, file string, issues []report.Issue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s (%s, exit %d)\n", rec.ID, rec.Tool, rec.ExitCode)
	if file != "" {
		fmt.Fprintf(&b, "%s — %d findings:\n", file, len(issues))
	} else {
		fmt.Fprintf(&b, "%d findings in %d files:\n", len(issues), len(rec.Files()))
	}
	fmt.Fprintln(&b)

	for _, is := range issues {
		if is.Line > 0 {
			if is.Col > 0 {
				fmt.Fprintf(&b, "%s:%d:%d: ", is.File, is.Line, is.Col)
			} else {
				fmt.Fprintf(&b, "%s:%d: ", is.File, is.Line)
			}
		} else {
			fmt.Fprintf(&b, "%s: ", is.File)
		}

		if is.Code != "" {
			fmt.Fprintf(&b, "[%s] %s\n", is.Code, is.Message)
		} else {
			fmt.Fprintf(&b, "%s\n", is.Message)
		}
	}

	if rec.Truncated {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "The tool's output was truncated; findings may be incomplete.")
	}

	return b.String()
}
