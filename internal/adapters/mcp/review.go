package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"desksweep/internal/application/commands"
	"desksweep/internal/review"
	"desksweep/internal/suggest"
)

// RegisterReviewTools adds the group-review tools to the MCP server.
func RegisterReviewTools(s *server.MCPServer, g *Guard) {
	s.AddTool(reviewStartTool(), reviewStartHandler(g))
	s.AddTool(reviewApplyTool(), reviewApplyHandler(g))
	s.AddTool(reviewCloseTool(), reviewCloseHandler(g))
}

// --- review_start ---

func reviewStartTool() mcp.Tool {
	return mcp.NewTool("review_start",
		mcp.WithDescription("Open a group review for one of the current file's suggestions. Lists the surviving members and the derived smart actions."),
		mcp.WithNumber("suggestion",
			mcp.Description("Index of the suggestion in the suggestions listing (0-based)"),
		),
	)
}

func reviewStartHandler(g *Guard) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		index := req.GetInt("suggestion", 0)
		res, err := commands.NewStartGroupReviewCommand(g.Svc, index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s\n", res.Message)
		for _, m := range g.Svc.Review().Members {
			fmt.Fprintf(&b, "  %s  %s (%s)\n", m.ID, m.Name, suggest.FormatBytes(m.Size))
		}
		b.WriteString(formatActions(res.Actions))
		return mcp.NewToolResultText(b.String()), nil
	}
}

// --- review_apply ---

func reviewApplyTool() mcp.Tool {
	return mcp.NewTool("review_apply",
		mcp.WithDescription("Execute one smart action from review_start against the whole group. Processed members leave the group; the review closes when the group empties."),
		mcp.WithNumber("action",
			mcp.Description("Index of the smart action (0-based)"),
			mcp.Required(),
		),
	)
}

func reviewApplyHandler(g *Guard) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		index := req.GetInt("action", -1)
		res, err := commands.NewApplyGroupActionCommand(g.Svc, index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		out := res.Message
		for _, notice := range g.Svc.Notices() {
			out += "\nwarning: " + notice
		}
		if !res.Closed {
			if actions, err := g.Svc.GroupActions(); err == nil {
				out += "\n" + formatActions(actions)
			}
		}
		return mcp.NewToolResultText(out), nil
	}
}

// --- review_close ---

func reviewCloseTool() mcp.Tool {
	return mcp.NewTool("review_close",
		mcp.WithDescription("Abandon the open group review without deciding on its members."),
	)
}

func reviewCloseHandler(g *Guard) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		if err := commands.NewCloseGroupReviewCommand(g.Svc).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Review closed."), nil
	}
}

func formatActions(actions []review.SmartAction) string {
	var b strings.Builder
	b.WriteString("actions:\n")
	for i, a := range actions {
		fmt.Fprintf(&b, "  %d: %s (keep %d, bin %d)\n", i, a.Label, len(a.Keep), len(a.Bin))
	}
	return b.String()
}
