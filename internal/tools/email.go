package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// SendEmailTool emails the latest MoM as a formatted HTML document.
type SendEmailTool struct {
	deps Deps
}

func (t *SendEmailTool) Name() string                     { return "send_email" }
func (t *SendEmailTool) IsReadOnly() bool                 { return false }
func (t *SendEmailTool) PermissionLevel() PermissionLevel { return PermissionSend }

func (t *SendEmailTool) Description() string {
	return `Send the latest Minutes of Meeting (MoM) to an email address as an HTML document with summary, decisions, and an action-item table.
Requires SMTP_HOST, SMTP_PORT, SMTP_USERNAME and SMTP_PASSWORD to be configured.`
}

func (t *SendEmailTool) Parameters() map[string]any {
	return map[string]any{
		"to_email": map[string]any{
			"type":        "string",
			"description": "The recipient's email address",
		},
	}
}

func (t *SendEmailTool) Execute(ctx context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		ToEmail string `json:"to_email"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if p.ToEmail == "" {
		return ToolResult{}, fmt.Errorf("to_email is required")
	}

	rec, ok := t.deps.Session.LatestMinutes()
	if !ok {
		return ToolResult{Content: "Error: No Minutes of Meeting (MoM) found in the session.", IsError: true}, nil
	}

	if err := t.deps.Mailer.SendMinutes(ctx, t.deps.SMTP, p.ToEmail, rec.Minutes); err != nil {
		return ToolResult{Content: fmt.Sprintf("An error occurred while sending the email: %v", err), IsError: true}, nil
	}
	return ToolResult{Content: "Email sent successfully!"}, nil
}
