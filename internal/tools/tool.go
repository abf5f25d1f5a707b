// Package tools defines the agent-callable tools: transcript ingestion,
// action analysis, and the four outbound executors.
package tools

import (
	"context"
	"encoding/json"
)

// PermissionLevel classifies what a tool touches, for confirmation prompts.
type PermissionLevel int

const (
	// PermissionRead tools only read or update local session state.
	PermissionRead PermissionLevel = iota
	// PermissionSend tools publish to an external system (Jira, Slack, SMTP).
	PermissionSend
)

func (l PermissionLevel) String() string {
	if l == PermissionSend {
		return "send"
	}
	return "read"
}

// Tool is one agent-callable operation.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, params json.RawMessage) (ToolResult, error)
	IsReadOnly() bool
	PermissionLevel() PermissionLevel
}

// ToolResult is what a tool returns to the model.
type ToolResult struct {
	Content       string
	IsError       bool
	UserCancelled bool
	Truncated     bool
}
