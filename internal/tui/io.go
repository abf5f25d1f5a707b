// Package tui provides the terminal front-ends: a bubbletea full-screen
// UI, a plain stdin/stdout mode, and a silent buffer for tests.
package tui

import "github.com/meetingctl/meetingctl/internal/tools"

// IO is the interface between the agent loop and a terminal front-end.
// Implementations must be safe to call from the agent goroutine.
type IO interface {
	// ReadInput blocks until the user submits a line. Returns io.EOF when
	// the input stream ends.
	ReadInput() (string, error)

	UserMessage(text string)
	ThinkingStart()
	TextDelta(delta string)
	TextDone(fullText string)
	ToolStart(id, name, params string)
	ToolDone(id, name, result string, isErr bool)
	Confirm(name, params string, level tools.PermissionLevel) bool
	SystemMessage(text string)
	Error(msg string)
	SetTokens(n int)
}
