package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"notodo/internal/auth"
	"notodo/internal/query"
	"notodo/internal/service"
)

// MCPServer exposes read-only views of the caller's tasks and notes as MCP tools.
// The caller is the user id the HTTP auth middleware put on the request context.
type MCPServer struct {
	svc *service.Services
	mcp *server.MCPServer
}

func NewMCPServer(svc *service.Services, version string) *MCPServer {
	s := &MCPServer{
		svc: svc,
		mcp: server.NewMCPServer("notodo", version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List the current user's tasks, optionally filtered and sorted."),
		mcp.WithString("search", mcp.Description("Case-insensitive substring of the task title")),
		mcp.WithString("status", mcp.Description("Status filter"),
			mcp.Enum(string(query.StatusAll), string(query.StatusCompleted), string(query.StatusPending), string(query.StatusHighPriority))),
		mcp.WithString("category", mcp.Description("Category name, or All")),
		mcp.WithString("sort", mcp.Description("Sort order"),
			mcp.Enum(string(query.SortNewest), string(query.SortOldest), string(query.SortAlpha), string(query.SortPriority))),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.listTasksHandler)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List the current user's notes, pinned first."),
		mcp.WithString("search", mcp.Description("Case-insensitive substring of the title or content")),
		mcp.WithString("category", mcp.Description("Category name, or All")),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.listNotesHandler)

	s.mcp.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Task completion counts and the most recent tasks and notes."),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.getDashboardHandler)

	return s
}

// Handler serves MCP over streamable HTTP without server-side sessions.
func (s *MCPServer) Handler() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.mcp, server.WithStateLess(true))
}

func (s *MCPServer) listTasksHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("not authenticated"), nil
	}

	q := query.TaskQuery{
		Search:   request.GetString("search", ""),
		Status:   query.Status(request.GetString("status", "")),
		Category: request.GetString("category", ""),
		Sort:     query.SortOrder(request.GetString("sort", "")),
	}
	tasks, err := s.svc.Tasks.List(ctx, userID, q)
	if err != nil {
		return toolError(err), nil
	}
	if len(tasks) == 0 {
		return mcp.NewToolResultText("No tasks found."), nil
	}

	views := make([]query.TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = query.TaskView{Task: t, IsOverdue: s.svc.Tasks.IsOverdue(t)}
	}
	return jsonResult(fmt.Sprintf("Found %d tasks", len(tasks)), views)
}

func (s *MCPServer) listNotesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("not authenticated"), nil
	}

	notes, err := s.svc.Notes.List(ctx, userID, query.NoteQuery{
		Search:   request.GetString("search", ""),
		Category: request.GetString("category", ""),
	})
	if err != nil {
		return toolError(err), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText("No notes found."), nil
	}
	return jsonResult(fmt.Sprintf("Found %d notes", len(notes)), notes)
}

func (s *MCPServer) getDashboardHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("not authenticated"), nil
	}

	d, err := s.svc.Dashboard.Get(ctx, userID)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(fmt.Sprintf("%d of %d tasks complete (%d%%)", d.CompletedTasks, d.TotalTasks, d.Progress), d)
}

func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(service.Message(err))
}

func jsonResult(summary string, v interface{}) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(summary + ":\n" + string(body)), nil
}
