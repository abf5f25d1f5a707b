package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meetingctl/meetingctl/internal/minutes"
)

// CreateTicketTool files a Jira issue for every ticket-flavored action
// item in the latest MoM.
type CreateTicketTool struct {
	deps Deps
}

func (t *CreateTicketTool) Name() string                     { return "create_ticket" }
func (t *CreateTicketTool) IsReadOnly() bool                 { return false }
func (t *CreateTicketTool) PermissionLevel() PermissionLevel { return PermissionSend }

func (t *CreateTicketTool) Description() string {
	return `Create JIRA tickets for the ticket-related action items in the latest Minutes of Meeting (MoM).
Each action item mentioning a ticket or Jira becomes one issue in the configured project, with the owner and due date recorded in the description.
Requires JIRA_URL, JIRA_USERNAME and JIRA_API_TOKEN to be configured.`
}

func (t *CreateTicketTool) Parameters() map[string]any {
	return map[string]any{}
}

func (t *CreateTicketTool) Execute(ctx context.Context, _ json.RawMessage) (ToolResult, error) {
	rec, ok := t.deps.Session.LatestMinutes()
	if !ok {
		return ToolResult{Content: noMomMsg}, nil
	}
	if len(rec.Minutes.ActionItems) == 0 {
		return ToolResult{Content: noActionsMsg}, nil
	}

	tickets, _ := minutes.SplitActions(rec.Minutes.ActionItems)
	if len(tickets) == 0 {
		return ToolResult{Content: "No ticket-related action items found in the latest MoM."}, nil
	}

	var lines []string
	for _, item := range tickets {
		issue, err := t.deps.Jira.CreateIssue(ctx, item)
		if err != nil {
			return ToolResult{Content: fmt.Sprintf("Failed to create Jira ticket: %v", err), IsError: true}, nil
		}
		lines = append(lines, fmt.Sprintf("Created JIRA ticket: Ticket ID '%s', Ticket URL '%s'", issue.Key, issue.URL))
	}
	return ToolResult{Content: strings.Join(lines, "\n")}, nil
}
