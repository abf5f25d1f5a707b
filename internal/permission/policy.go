package permission

import (
	"encoding/json"

	"github.com/meetingctl/meetingctl/internal/config"
)

// DefaultPolicy implements permission checks based on config. Read-only
// session tools are auto-approved through config; the outbound executors
// (ticket, invite, Slack post, email) prompt unless the mode says otherwise.
type DefaultPolicy struct {
	AutoApprove      bool
	AutoApproveTools map[string]bool
}

// NewDefaultPolicy creates a policy from config.
func NewDefaultPolicy(cfg *config.PermissionConfig) *DefaultPolicy {
	approveTools := make(map[string]bool, len(cfg.AutoApproveTools))
	for _, name := range cfg.AutoApproveTools {
		approveTools[name] = true
	}

	return &DefaultPolicy{
		AutoApprove:      cfg.Mode == "auto-approve",
		AutoApproveTools: approveTools,
	}
}

// Check determines whether a tool call is allowed.
func (p *DefaultPolicy) Check(toolName string, params json.RawMessage) Decision {
	if p.AutoApprove {
		return Allow
	}
	if p.AutoApproveTools[toolName] {
		return Allow
	}
	return NeedConfirmation
}
