// Package mcp exposes the declutter session over the Model Context
// Protocol so an agent can drive a triage run tool by tool.
package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"desksweep/internal/application"
	"desksweep/internal/config"
	"desksweep/internal/domain"
)

// Guard serializes tool handlers onto the session service, which expects a
// single coordinating goroutine. The MCP server may run handlers
// concurrently; the guard makes them take turns.
type Guard struct {
	sync.Mutex
	Svc *application.Service
}

// NewGuard wraps a service for concurrent tool access
func NewGuard(svc *application.Service) *Guard {
	return &Guard{Svc: svc}
}

// acquire takes the lock and adopts any finished suggestion computations.
// There is no TUI-style pump draining the engine's results channel here, so
// handlers commit completed results themselves before touching the session.
func (g *Guard) acquire() {
	g.Lock()
	for {
		select {
		case r := <-g.Svc.Engine().Results():
			g.Svc.CommitResult(r)
		default:
			return
		}
	}
}

// RegisterWriteTools adds all mutating session tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, g *Guard) {
	s.AddTool(scanTool(), scanHandler(g))
	s.AddTool(decideTool(), decideHandler(g))
	s.AddTool(undoTool(), undoHandler(g))
	s.AddTool(restoreTool(), restoreHandler(g))
	s.AddTool(commitBinTool(), commitBinHandler(g))
}

// --- scan ---

func scanTool() mcp.Tool {
	return mcp.NewTool("scan",
		mcp.WithDescription("Enumerate a location and start a fresh declutter session over it. Replaces any existing session."),
		mcp.WithString("location",
			mcp.Description("Directory to scan. Omit to use the configured location."),
		),
	)
}

func scanHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		location := req.GetString("location", "")
		if location == "" {
			location = config.ExpandPath(g.Svc.Config().Location)
		}
		if err := g.Svc.Load(location); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Loaded %d files from %s.", g.Svc.Session().LoadedCount(), location)), nil
	}
}

// --- decide ---

func decideTool() mcp.Tool {
	return mcp.NewTool("decide",
		mcp.WithDescription("Apply a decision (keep, bin, stack, cloud) to the current file, or to a specific file by id."),
		mcp.WithString("action",
			mcp.Description("One of: keep, bin, stack, cloud"),
			mcp.Required(),
		),
		mcp.WithString("id",
			mcp.Description("File id to decide on. Omit to decide on the current file."),
		),
	)
}

func decideHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		action := req.GetString("action", "")
		d, ok := domain.ParseDecision(action)
		if !ok {
			return toolError(fmt.Errorf("invalid action %q (expected keep, bin, stack, cloud)", action))
		}

		var err error
		id := req.GetString("id", "")
		if id == "" {
			err = g.Svc.Decide(d)
		} else {
			err = g.Svc.DecideID(d, domain.FileID(id))
		}
		if err != nil {
			return toolError(err)
		}

		out := fmt.Sprintf("Decision %s applied.", d)
		for _, notice := range g.Svc.Notices() {
			out += "\nwarning: " + notice
		}
		if rec, ok := g.Svc.Current(); ok {
			out += "\nnext: " + rec.Name
		} else {
			out += "\nSession finished."
		}
		return mcp.NewToolResultText(out), nil
	}
}

// --- undo ---

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Reverse the most recent decision and move the cursor back to the restored file."),
	)
}

func undoHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		if !g.Svc.Undo() {
			return mcp.NewToolResultText("Nothing to undo."), nil
		}
		if rec, ok := g.Svc.Current(); ok {
			return mcp.NewToolResultText("Undone; cursor on " + rec.Name + "."), nil
		}
		return mcp.NewToolResultText("Undone."), nil
	}
}

// --- restore ---

func restoreTool() mcp.Tool {
	return mcp.NewTool("restore",
		mcp.WithDescription("Reinstate a pending-bin file in the working list (deferred bin mode)."),
		mcp.WithString("id",
			mcp.Description("File id from the pending_bin listing"),
			mcp.Required(),
		),
	)
}

func restoreHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}
		if !g.Svc.RestoreFromBin(domain.FileID(id)) {
			return toolError(fmt.Errorf("no pending-bin file with id %s", id))
		}
		return mcp.NewToolResultText("Restored."), nil
	}
}

// --- commit_bin ---

func commitBinTool() mcp.Tool {
	return mcp.NewTool("commit_bin",
		mcp.WithDescription("Move every pending-bin file to the system trash."),
	)
}

func commitBinHandler(g *Guard) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.acquire()
		defer g.Unlock()

		n := g.Svc.CommitBin()
		out := fmt.Sprintf("Moved %d files to trash.", n)
		for _, notice := range g.Svc.Notices() {
			out += "\nwarning: " + notice
		}
		return mcp.NewToolResultText(out), nil
	}
}
