package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListBubblesTool(srv, svc)
	registerAddBubbleTool(srv, svc)
	registerMoveBubbleTool(srv, svc)
	registerRemoveBubbleTool(srv, svc)
	registerRefreshBubblesTool(srv, svc)
	registerClearLayoutTool(srv, svc)
	registerListContactsTool(srv, svc)
	registerCallSummaryTool(srv, svc)
}

func registerListBubblesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_bubbles",
		mcp.WithDescription("List the bubbles currently placed on the canvas, with positions and sizes."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Layout(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddBubbleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_bubble",
		mcp.WithDescription("Place a bubble for a contact. The bubble is sized from recent call time and dropped at a free spot."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description("Contact name, contact id, or phone number."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, notes, err := svc.AddBubble(ctx, strings.TrimSpace(ref))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"bubble": dto,
			"notes":  notes,
		})
	})
}

func registerMoveBubbleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_bubble",
		mcp.WithDescription("Offer a new center position for a bubble. The move is admitted only if the bubble stays inside the canvas and clear of the others."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Bubble identifier to move."),
		),
		mcp.WithNumber("x",
			mcp.Required(),
			mcp.Description("Proposed center x coordinate in canvas points."),
		),
		mcp.WithNumber("y",
			mcp.Required(),
			mcp.Description("Proposed center y coordinate in canvas points."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID string  `json:"id"`
			X  float64 `json:"x"`
			Y  float64 `json:"y"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.ID) == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		result, err := svc.MoveBubble(ctx, args.ID, args.X, args.Y)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	})
}

func registerRemoveBubbleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_bubble",
		mcp.WithDescription("Remove the bubble for a contact. Removing a contact with no bubble is a quiet no-op."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description("Bubble id, contact name, contact id, or phone number."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		removed, err := svc.RemoveBubble(ctx, strings.TrimSpace(ref))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"ref":     ref,
			"removed": removed,
		})
	})
}

func registerRefreshBubblesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"refresh_bubbles",
		mcp.WithDescription("Re-size every placed bubble from current call data, keeping positions."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, notes, err := svc.RefreshBubbles(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"layout": dto,
			"notes":  notes,
		})
	})
}

func registerClearLayoutTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"clear_layout",
		mcp.WithDescription("Remove every bubble and the saved contact selection."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := svc.ClearLayout(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"cleared": true,
		})
	})
}

func registerListContactsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_contacts",
		mcp.WithDescription("List the contact book, marking contacts that already have a bubble."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		contacts, err := svc.ListContacts(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"contacts": contacts,
			"count":    len(contacts),
		})
	})
}

func registerCallSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"call_summary",
		mcp.WithDescription("Summarize call time per contact over the configured window."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sum, err := svc.CallSummary(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sum)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
