package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/meetingctl/meetingctl/internal/minutes"
)

const (
	noMomMsg     = "No Minutes of Meeting (MoM) found in the session to analyze."
	noActionsMsg = "No action items found in the latest MoM."
)

// AnalyzeActionsTool inspects the latest MoM's action items and suggests
// which executors apply, using the shared keyword classifier.
type AnalyzeActionsTool struct {
	deps Deps
}

func (t *AnalyzeActionsTool) Name() string                     { return "analyze_actions" }
func (t *AnalyzeActionsTool) IsReadOnly() bool                 { return true }
func (t *AnalyzeActionsTool) PermissionLevel() PermissionLevel { return PermissionRead }

func (t *AnalyzeActionsTool) Description() string {
	return `Analyze the action items in the latest Minutes of Meeting (MoM) and suggest which follow-up actions are possible.
Call this after process_url to see which items look like ticket requests and which look like scheduling requests.
Makes no external calls; it only reads the session.`
}

func (t *AnalyzeActionsTool) Parameters() map[string]any {
	return map[string]any{}
}

func (t *AnalyzeActionsTool) Execute(_ context.Context, _ json.RawMessage) (ToolResult, error) {
	rec, ok := t.deps.Session.LatestMinutes()
	if !ok {
		return ToolResult{Content: noMomMsg}, nil
	}
	if len(rec.Minutes.ActionItems) == 0 {
		return ToolResult{Content: noActionsMsg}, nil
	}

	tickets, schedules := minutes.SplitActions(rec.Minutes.ActionItems)

	var sb strings.Builder
	sb.WriteString("Based on the latest MoM, I found the following potential actions:\n")
	found := false

	if len(tickets) > 0 {
		sb.WriteString("\n- I can create JIRA tickets for the following items:\n")
		for _, item := range tickets {
			sb.WriteString("  - '" + item.Action + "'\n")
		}
		found = true
	}
	if len(schedules) > 0 {
		sb.WriteString("\n- I can schedule calls for the following items:\n")
		for _, item := range schedules {
			sb.WriteString("  - '" + item.Action + "'\n")
		}
		found = true
	}

	if !found {
		sb.Reset()
		sb.WriteString("I analyzed the MoM but did not find any specific action items for creating JIRA tickets or scheduling calls.")
	}

	sb.WriteString("\nI can also send the MoM to a Slack channel. What would you like to do?")
	return ToolResult{Content: sb.String()}, nil
}
