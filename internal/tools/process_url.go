package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meetingctl/meetingctl/internal/errs"
)

// ProcessURLTool fetches a meeting transcript, summarizes it, and extracts
// structured minutes into the session.
type ProcessURLTool struct {
	deps Deps
}

func (t *ProcessURLTool) Name() string                     { return "process_url" }
func (t *ProcessURLTool) IsReadOnly() bool                 { return true }
func (t *ProcessURLTool) PermissionLevel() PermissionLevel { return PermissionRead }

func (t *ProcessURLTool) Description() string {
	return `Fetch a meeting transcript from a URL, generate a summary and structured Minutes of Meeting (MoM), and save both to the session.
Use this whenever the user provides a transcript URL. After processing, present the summary to the user.
The extracted MoM feeds the other tools: analyze_actions, create_ticket, schedule_call, post_slack, send_email.`
}

func (t *ProcessURLTool) Parameters() map[string]any {
	return map[string]any{
		"url": map[string]any{
			"type":        "string",
			"description": "The transcript URL to fetch and process (http or https)",
		},
	}
}

func (t *ProcessURLTool) Execute(ctx context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if p.URL == "" {
		return ToolResult{}, fmt.Errorf("url is required")
	}

	msg, err := t.deps.Pipeline.Process(ctx, t.deps.Session, p.URL)
	if err != nil {
		switch errs.KindOf(err) {
		case errs.KindFetch:
			return ToolResult{Content: fmt.Sprintf("Error: Failed to fetch the URL. Details: %v", err), IsError: true}, nil
		case errs.KindMalformedOutput:
			return ToolResult{Content: "Error: Failed to decode the MoM JSON from the model's response.", IsError: true}, nil
		default:
			return ToolResult{Content: fmt.Sprintf("An unexpected error occurred: %v", err), IsError: true}, nil
		}
	}
	return ToolResult{Content: msg}, nil
}
