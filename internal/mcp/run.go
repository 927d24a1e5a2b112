package mcp

import (
	"context"
	"fmt"

	"github.com/lintgate/lintgate/internal/lint"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type runParams struct {
	Target string `json:"target,omitempty" jsonschema:"directory to lint, relative to the project root. Defaults to the configured target."`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	eng := h.engine
	if params.Target != "" {
		// Override the target for this call only.
		cfg := *h.engine.Config
		cfg.RawTarget = params.Target
		eng = &lint.Engine{
			Config: &cfg,
			Runner: h.engine.Runner,
			Env:    h.engine.Env,
			Root:   h.engine.Root,
		}
	}

	o, err := eng.Run(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("lint run failed: %v", err))
	}

	// Save the record for lint_inspect.
	_ = h.store.Save(o.Record())

	text := o.Summary()
	if !o.Passed {
		text += fmt.Sprintf("\nInspect with lint_inspect(run_id=%q, file=\"<path>\").\n", o.RunID)
	}
	return textResult(text)
}
