package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/nova/pkg/runner/complete"
	"tableflip.dev/nova/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateNoteTool(srv, svc)
	registerUpdateNoteTool(srv, svc)
	registerGetNoteTool(srv, svc)
	registerListNotesTool(srv, svc)
	registerSearchNotesTool(srv, svc)
	registerToggleTool(srv, svc, "complete_note", "Toggle whether a note is completed.", complete.Completed)
	registerToggleTool(srv, svc, "pin_note", "Pin or unpin a note. Pinned notes are listed first.", complete.Pinned)
	registerToggleTool(srv, svc, "archive_note", "Move a note to the vault, or restore it from the vault.", complete.Archived)
	registerToggleTool(srv, svc, "trash_note", "Move a note to the trash, or restore it from the trash.", complete.Deleted)
	registerMoveNoteTool(srv, svc)
	registerListBucketsTool(srv, svc)
	registerTimerHistoryTool(srv, svc)
	registerSuggestTool(srv, svc)
}

func priorityOption() mcp.ToolOption {
	return mcp.WithString("priority",
		mcp.Description("Priority label."),
		mcp.Enum("High", "Medium", "Low", "Someday"),
	)
}

func registerCreateNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_note",
		mcp.WithDescription("Create a new note. It is placed at the top of its bucket."),
		mcp.WithString("title",
			mcp.Description("Short title. Notes without a title display as Untitled."),
		),
		mcp.WithString("content",
			mcp.Description("Markdown body."),
		),
		mcp.WithString("bucket",
			mcp.Description("Bucket id or name, for example work or Ideas. Defaults to the first bucket."),
		),
		mcp.WithString("category",
			mcp.Description("Free-text category."),
		),
		priorityOption(),
		mcp.WithString("tags",
			mcp.Description("Comma separated tags."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.CreateNote(CreateNoteOptions{
			Title:    request.GetString("title", ""),
			Content:  request.GetString("content", ""),
			Bucket:   strings.TrimSpace(request.GetString("bucket", "")),
			Category: strings.TrimSpace(request.GetString("category", "")),
			Priority: request.GetString("priority", ""),
			Tags:     splitTags(request.GetString("tags", "")),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_note",
		mcp.WithDescription("Change fields of an existing note. Omitted fields are left alone."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note id or a unique id prefix."),
		),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("content", mcp.Description("New markdown body.")),
		mcp.WithString("bucket", mcp.Description("Bucket id or name.")),
		mcp.WithString("category", mcp.Description("New category.")),
		priorityOption(),
		mcp.WithString("add_tags", mcp.Description("Comma separated tags to append.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts := UpdateNoteOptions{ID: id, AddTags: splitTags(request.GetString("add_tags", ""))}
		opts.Title = optional(request, "title")
		opts.Content = optional(request, "content")
		opts.Bucket = optional(request, "bucket")
		opts.Category = optional(request, "category")
		opts.Priority = optional(request, "priority")

		dto, err := svc.UpdateNote(opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_note",
		mcp.WithDescription("Fetch a single note by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note id or a unique id prefix."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.GetNote(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListNotesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_notes",
		mcp.WithDescription("List notes in display order: pinned first, then by manual order."),
		mcp.WithString("view",
			mcp.Description("Which notes to list."),
			mcp.Enum("notes", "archived", "trash", "all"),
		),
		mcp.WithString("bucket",
			mcp.Description("Restrict to one bucket, by id or name."),
		),
		mcp.WithString("priority",
			mcp.Description("Restrict to one priority."),
			mcp.Enum("All", "High", "Medium", "Low", "Someday"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		notes, err := svc.ListNotes(
			request.GetString("view", "notes"),
			strings.TrimSpace(request.GetString("bucket", "")),
			request.GetString("priority", ""),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"notes": notes,
			"count": len(notes),
		})
	})
}

func registerSearchNotesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_notes",
		mcp.WithDescription("Search active and archived notes by title, content or tag."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive text to look for."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)
		results, err := svc.SearchNotes(query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerToggleTool(srv *server.MCPServer, svc *Service, name, description string, flag complete.Flag) {
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note id or a unique id prefix."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleNote(id, flag)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_note",
		mcp.WithDescription("Reorder manually: place a note at the position of another note."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note to move."),
		),
		mcp.WithString("onto",
			mcp.Required(),
			mcp.Description("Note whose position it takes."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		onto, err := request.RequireString("onto")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		notes, err := svc.MoveNote(id, onto)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"notes": notes})
	})
}

func registerListBucketsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_buckets",
		mcp.WithDescription("List every bucket with its active note count and completion progress."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		buckets, err := svc.ListBuckets()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"buckets": buckets})
	})
}

func registerTimerHistoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"timer_history",
		mcp.WithDescription("List completed Pomodoro sessions, most recent first."),
		mcp.WithString("window",
			mcp.Description(fmt.Sprintf("How far back to look, for example 3d or 1w2d (default %s).", timeutil.DefaultWindow)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessions, err := svc.TimerHistory(request.GetString("window", timeutil.DefaultWindow), time.Now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"sessions": sessions,
			"count":    len(sessions),
		})
	})
}

func registerSuggestTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"suggest_note",
		mcp.WithDescription("Ask the assistant for a category, tags and priority for a note and save them."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note id or a unique id prefix."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if svc.App == nil {
			return mcp.NewToolResultError(errNoApp.Error()), nil
		}
		id, err := svc.App.Notes.Resolve(ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		n, applied, err := svc.App.SuggestNote(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"applied": applied,
			"note":    svc.dto(n),
		})
	})
}

func optional(request mcp.CallToolRequest, key string) *string {
	const unset = "\x00"
	v := request.GetString(key, unset)
	if v == unset {
		return nil
	}
	return &v
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
