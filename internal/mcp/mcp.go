// Package mcp provides the lintgate MCP server, registering the lint
// tools and publishing model instructions.
package mcp

import (
	"context"
	_ "embed"
	"net/url"
	"time"

	"github.com/lintgate/lintgate"
	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/lint"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/internal/runner"
	"github.com/lintgate/lintgate/internal/toolenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	engine *lint.Engine
	runner *runner.Runner // retained for updateWorkspaceFromRoots
	store  report.Store
}

// NewServer creates an MCP server with all lintgate tools registered.
func NewServer(cfg *config.Config, r *runner.Runner, store report.Store, env toolenv.Env, root string) *mcp.Server {
	h := &handler{
		engine: &lint.Engine{
			Config: cfg,
			Runner: r,
			Env:    env,
			Root:   root,
		},
		runner: r,
		store:  store,
	}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
		InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
			h.updateWorkspaceFromRoots(ctx, req.Session)
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "lintgate", Version: lintgate.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "lint_run",
		Description: `Run the configured lint tool once against the target directory and report the verdict.

The tool's exit status decides the result: zero passes, anything else fails.
Results are stored for drill-down via lint_inspect.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "lint_inspect",
		Description: `Drill into findings from a stored lint_run.

Use the run_id from the lint_run output. Pass a file path to scope the
findings to one file, or omit it for the full list.`,
	}, h.inspectHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "lint_env",
		Description: "Describe the tool environment: the resolved lint command, its version, and the environment directory.",
	}, h.envHandler)

	return s
}

// updateWorkspaceFromRoots queries the client for MCP roots and updates the
// handler's engine and runner if a valid root is returned.
// This is called during session initialization, before any tool calls.
func (h *handler) updateWorkspaceFromRoots(ctx context.Context, session *mcp.ServerSession) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roots, err := session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil {
		return
	}
	if len(roots.Roots) == 0 {
		return
	}

	u, err := url.Parse(roots.Roots[0].URI)
	if err != nil || u.Scheme != "file" {
		return
	}
	workspace := u.Path

	loaded, err := config.Load(workspace)
	if err != nil {
		return
	}

	env := toolenv.New(loaded.ProjectRoot, loaded.Config.Env.Dir)

	// Update runner.
	h.runner.Workspace = loaded.ProjectRoot
	h.runner.Timeout = loaded.Config.Timeout()
	h.runner.MaxOutput = loaded.Config.MaxOutputBytes()
	h.runner.Env = env.Environ()

	// Update engine.
	h.engine.Config = loaded.Config
	h.engine.Env = env
	h.engine.Root = loaded.ProjectRoot
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
