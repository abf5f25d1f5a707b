package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// PostSlackTool posts the latest MoM to a Slack channel.
type PostSlackTool struct {
	deps Deps
}

func (t *PostSlackTool) Name() string                     { return "post_slack" }
func (t *PostSlackTool) IsReadOnly() bool                 { return false }
func (t *PostSlackTool) PermissionLevel() PermissionLevel { return PermissionSend }

func (t *PostSlackTool) Description() string {
	return `Post the latest Minutes of Meeting (MoM) to a Slack channel as a formatted message with summary, decisions, and action items.
Requires SLACK_API_TOKEN to be configured.`
}

func (t *PostSlackTool) Parameters() map[string]any {
	return map[string]any{
		"channel": map[string]any{
			"type":        "string",
			"description": "The Slack channel ID to post to (e.g. C0123456789)",
		},
	}
}

func (t *PostSlackTool) Execute(ctx context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		Channel string `json:"channel"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if p.Channel == "" {
		return ToolResult{}, fmt.Errorf("channel is required")
	}

	rec, ok := t.deps.Session.LatestMinutes()
	if !ok {
		return ToolResult{Content: noMomMsg}, nil
	}

	if err := t.deps.Slack.PostMinutes(ctx, p.Channel, rec.Minutes); err != nil {
		return ToolResult{Content: fmt.Sprintf("Failed to post to Slack: %v", err), IsError: true}, nil
	}
	return ToolResult{Content: fmt.Sprintf("MOM successfully posted to Slack channel %s.", p.Channel)}, nil
}
