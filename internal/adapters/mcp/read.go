package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"desksweep/internal/domain"
	"desksweep/internal/suggest"
)

// RegisterReadTools adds all read-only session tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, g *Guard) {
	s.AddTool(statusTool(), statusHandler(g))
	s.AddTool(currentTool(), currentHandler(g))
	s.AddTool(listTool(), listHandler(g))
	s.AddTool(suggestionsTool(), suggestionsHandler(g))
	s.AddTool(pendingBinTool(), pendingBinHandler(g))
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Session progress: files remaining, decisions made, space reclaimed."),
	)
}

func statusHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		session := g.Svc.Session()
		c := session.Counters()
		var sb strings.Builder
		fmt.Fprintf(&sb, "loaded: %d\n", session.LoadedCount())
		fmt.Fprintf(&sb, "remaining: %d\n", session.Len())
		fmt.Fprintf(&sb, "kept: %d\n", c.Kept)
		fmt.Fprintf(&sb, "binned: %d\n", c.Binned)
		fmt.Fprintf(&sb, "reclaimed: %s\n", suggest.FormatBytes(c.ReclaimedBytes))
		fmt.Fprintf(&sb, "pending bin: %d\n", len(session.PendingBin()))
		fmt.Fprintf(&sb, "stacked: %d\n", len(session.Stacked()))
		if t, ok := session.Filter(); ok {
			fmt.Fprintf(&sb, "filter: %s\n", t)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- current ---

func currentTool() mcp.Tool {
	return mcp.NewTool("current",
		mcp.WithDescription("The file at the cursor, the one a decision would apply to."),
	)
}

func currentHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		rec, ok := g.Svc.Current()
		if !ok {
			return mcp.NewToolResultText("Session finished: no file under the cursor."), nil
		}
		return mcp.NewToolResultText(formatRecord(rec)), nil
	}
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List the files still awaiting a decision, in triage order."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of files to return (default 20)"),
		),
	)
}

func listHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		limit := req.GetInt("limit", 20)
		files := g.Svc.Session().Visible()
		if len(files) == 0 {
			return mcp.NewToolResultText("No files awaiting a decision."), nil
		}
		if limit > 0 && len(files) > limit {
			files = files[:limit]
		}
		var sb strings.Builder
		for _, rec := range files {
			fmt.Fprintf(&sb, "%s  %s  %s  %s\n", rec.ID, rec.Name, rec.Type, suggest.FormatBytes(rec.Size))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- suggestions ---

func suggestionsTool() mcp.Tool {
	return mcp.NewTool("suggestions",
		mcp.WithDescription("Suggestions for the current file. Empty while the background comparison is still running."),
	)
}

func suggestionsHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		if _, ok := g.Svc.Current(); !ok {
			return toolError(fmt.Errorf("no current file"))
		}
		sugs := g.Svc.CurrentSuggestions()
		if len(sugs) == 0 {
			return mcp.NewToolResultText("No suggestions (yet)."), nil
		}
		var sb strings.Builder
		for i, s := range sugs {
			fmt.Fprintf(&sb, "%d. [%s] %s", i+1, s.Kind, s.Message)
			if s.Hint != "" {
				fmt.Fprintf(&sb, " — %s", s.Hint)
			}
			if s.IsGroup() {
				fmt.Fprintf(&sb, " (members: %s)", joinIDs(s.Members))
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- pending_bin ---

func pendingBinTool() mcp.Tool {
	return mcp.NewTool("pending_bin",
		mcp.WithDescription("Files decided bin but not yet moved to the trash (deferred mode)."),
	)
}

func pendingBinHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		pending := g.Svc.Session().PendingBin()
		if len(pending) == 0 {
			return mcp.NewToolResultText("Pending bin is empty."), nil
		}
		var sb strings.Builder
		for _, rec := range pending {
			fmt.Fprintf(&sb, "%s  %s  %s\n", rec.ID, rec.Name, suggest.FormatBytes(rec.Size))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatRecord(rec domain.FileRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "id: %s\n", rec.ID)
	fmt.Fprintf(&sb, "name: %s\n", rec.Name)
	fmt.Fprintf(&sb, "path: %s\n", rec.Path)
	fmt.Fprintf(&sb, "type: %s\n", rec.Type)
	fmt.Fprintf(&sb, "size: %s\n", suggest.FormatBytes(rec.Size))
	if !rec.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return sb.String()
}

func joinIDs(ids []domain.FileID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
