// Package provider defines the unified interface over generative-model
// backends. Each adapter (anthropic.go, openai.go) converts its vendor's
// streaming response into the shared Event sequence, so the agent loop and
// the ingestion pipeline never touch vendor SDK types.
package provider

import (
	"context"
	"encoding/json"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ContentType string

const (
	ContentTypeText       ContentType = "text"
	ContentTypeToolUse    ContentType = "tool_use"
	ContentTypeToolResult ContentType = "tool_result"
)

// Content is one block inside a message.
type Content struct {
	Type       ContentType
	Text       string
	ToolUseID  string          // tool_use / tool_result
	ToolName   string          // tool_use
	ToolInput  json.RawMessage // tool_use
	ToolResult string          // tool_result
	IsError    bool            // tool_result
}

// Message is one entry in the conversation history.
type Message struct {
	Role    Role
	Content []Content
}

// TextMessage builds a single-block text message.
func TextMessage(role Role, text string) Message {
	return Message{
		Role:    role,
		Content: []Content{{Type: ContentTypeText, Text: text}},
	}
}

// ToolSchema describes one tool to the model (JSON Schema properties).
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ChatRequest is the provider-independent request.
type ChatRequest struct {
	Model        string
	Messages     []Message
	Tools        []ToolSchema
	SystemPrompt string
	MaxTokens    int
}

type EventType int

const (
	// EventTextDelta carries an incremental chunk of assistant text.
	EventTextDelta EventType = iota

	// EventToolCallDone carries one fully assembled tool call.
	EventToolCallDone

	// EventDone ends the turn and carries token usage.
	EventDone

	// EventError reports a stream failure.
	EventError
)

// Event is one element of a provider's streaming output.
type Event struct {
	Type EventType

	TextDelta string           // EventTextDelta
	ToolCall  *ToolCallRequest // EventToolCallDone
	Usage     *Usage           // EventDone
	Error     error            // EventError
}

// ToolCallRequest is a tool invocation the model asked for.
type ToolCallRequest struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// Usage records token consumption for one API call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Provider is the unified model backend interface. Chat returns a channel
// that emits Events until EventDone or EventError, then closes. Callers
// must drain the channel.
type Provider interface {
	Chat(ctx context.Context, req *ChatRequest) (<-chan Event, error)

	// Name returns the provider identifier, e.g. "anthropic", "openai".
	Name() string

	// DefaultModel returns the model used when none is configured.
	DefaultModel() string
}

// Generate runs a single tool-free completion and returns the collected
// text. The ingestion pipeline uses this for the summary and MoM passes.
func Generate(ctx context.Context, p Provider, model, prompt string) (string, error) {
	req := &ChatRequest{
		Model:     model,
		Messages:  []Message{TextMessage(RoleUser, prompt)},
		MaxTokens: 8192,
	}

	events, err := p.Chat(ctx, req)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var streamErr error
	for ev := range events {
		switch ev.Type {
		case EventTextDelta:
			sb.WriteString(ev.TextDelta)
		case EventError:
			if streamErr == nil {
				streamErr = ev.Error
			}
		}
	}
	if streamErr != nil {
		return "", streamErr
	}
	return strings.TrimSpace(sb.String()), nil
}
