package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type envParams struct{}

func (h *handler) envHandler(ctx context.Context, req *mcp.CallToolRequest, _ envParams) (*mcp.CallToolResult, any, error) {
	var b strings.Builder

	tool := h.engine.Config.ToolName()
	fmt.Fprintf(&b, "Tool: %s\n", tool)

	if h.engine.Env.Dir != "" {
		fmt.Fprintf(&b, "Environment: %s\n", h.engine.Env.Dir)
	} else {
		fmt.Fprintln(&b, "Environment: (host PATH)")
	}

	bin, err := h.engine.Env.Resolve(tool)
	if err != nil {
		fmt.Fprintf(&b, "Resolved: not available\n\n%v\n", err)
		return textResult(b.String())
	}
	fmt.Fprintf(&b, "Resolved: %s\n", bin)

	// Version probe; failure is informational only.
	res, err := h.engine.Runner.Run(ctx, []string{bin, "--version"}, "")
	if err == nil && res.ExitCode == 0 {
		version := strings.TrimSpace(string(res.Stdout))
		if version == "" {
			version = strings.TrimSpace(string(res.Stderr))
		}
		if version != "" {
			fmt.Fprintf(&b, "Version: %s\n", firstLine(version))
		}
	}

	fmt.Fprintf(&b, "Target: %s\n", h.engine.Config.Target())

	return textResult(b.String())
}

// firstLine returns the first line of s.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
