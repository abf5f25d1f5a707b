package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meetingctl/meetingctl/internal/mail"
	"github.com/meetingctl/meetingctl/internal/minutes"
)

// ScheduleCallTool sends a follow-up calendar invite when the latest MoM
// contains a scheduling-flavored action item.
type ScheduleCallTool struct {
	deps Deps

	// now is overridable in tests.
	now func() time.Time
}

func (t *ScheduleCallTool) Name() string                     { return "schedule_call" }
func (t *ScheduleCallTool) IsReadOnly() bool                 { return false }
func (t *ScheduleCallTool) PermissionLevel() PermissionLevel { return PermissionSend }

func (t *ScheduleCallTool) Description() string {
	return `Send a follow-up meeting invite by email when the latest Minutes of Meeting (MoM) contains a scheduling action item.
The invite carries an iCalendar attachment so the recipient's mail client can add the event directly.
Requires SENDER_EMAIL and SENDER_PASSWORD to be configured.`
}

func (t *ScheduleCallTool) Parameters() map[string]any {
	return map[string]any{}
}

func (t *ScheduleCallTool) Execute(ctx context.Context, _ json.RawMessage) (ToolResult, error) {
	rec, ok := t.deps.Session.LatestMinutes()
	if !ok {
		return ToolResult{Content: "Error: No MoM found in session to create a call from.", IsError: true}, nil
	}

	_, schedules := minutes.SplitActions(rec.Minutes.ActionItems)
	if len(schedules) == 0 {
		return ToolResult{Content: "No scheduling-related action items found in the latest MoM."}, nil
	}

	now := time.Now
	if t.now != nil {
		now = t.now
	}
	inv := mail.NewFollowUpInvite(now())

	if err := t.deps.Mailer.SendInvite(ctx, t.deps.Schedule, inv); err != nil {
		return ToolResult{Content: fmt.Sprintf("Failed to send email invite: %v", err), IsError: true}, nil
	}
	return ToolResult{Content: "Meeting invite sent successfully via SMTP with an HTML body and calendar attachment."}, nil
}
