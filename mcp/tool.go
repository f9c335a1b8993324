package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zoonderkins/claude-confirm/confirm"
	"github.com/zoonderkins/claude-confirm/core/types"
)

// ToolName is the name the agent calls
const ToolName = "confirm"

// Confirmer runs a confirmation and returns the text for the agent
type Confirmer interface {
	Confirm(ctx context.Context, raw types.ConfirmRequest) (string, error)
}

var sectionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":    map[string]any{"type": "string", "description": "Short task title"},
		"content":  map[string]any{"type": "string", "description": "What the task involves"},
		"selected": map[string]any{"type": "boolean", "description": "Initially selected (default true)"},
	},
	"required": []string{"title", "content"},
}

var contextProperties = map[string]any{
	"cwd":          map[string]any{"type": "string"},
	"project_name": map[string]any{"type": "string"},
	"terminal":     map[string]any{"type": "string"},
	"pid":          map[string]any{"type": "integer"},
}

// confirmTool returns the confirm tool definition
func confirmTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription(toolDescription),
		mcp.WithTitleAnnotation("Confirm and summarize"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message to show the user (Markdown supported)"),
		),
		mcp.WithArray("sections",
			mcp.Description("Optional follow-up tasks the user can select"),
			mcp.Items(sectionSchema),
		),
		mcp.WithBoolean("is_markdown",
			mcp.Description("Whether message and sections are Markdown (default true)"),
		),
		mcp.WithObject("context",
			mcp.Description("Overrides for the detected environment context"),
			mcp.Properties(contextProperties),
		),
	)
}

// handleConfirm is the confirm tool handler. Declines come back as normal
// results; failures come back as error results so the agent can tell
// "the user said no" from "the confirmation could not run".
func (s *Server) handleConfirm(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw types.ConfirmRequest
	if err := req.BindArguments(&raw); err != nil {
		s.logger.Info("malformed confirm arguments", "error", err)
		return mcp.NewToolResultError("invalid confirm arguments: " + err.Error()), nil
	}

	text, err := s.confirmer.Confirm(ctx, raw)
	if err != nil {
		if confirm.IsUserFacing(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.logger.Error("confirmation failed", "error", err)
		return mcp.NewToolResultError("confirmation UI failed: " + err.Error()), nil
	}

	return mcp.NewToolResultText(text), nil
}
