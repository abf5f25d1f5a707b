// Package agent orchestrates the interactive loop between the user, the
// LLM, and the meeting tools.
package agent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/meetingctl/meetingctl/internal/config"
	"github.com/meetingctl/meetingctl/internal/provider"
	"github.com/meetingctl/meetingctl/internal/session"
	"github.com/meetingctl/meetingctl/internal/tools"
	"github.com/meetingctl/meetingctl/internal/tui"
)

const defaultSystemPrompt = `You are meetingctl, a meeting assistant running in the terminal.
You turn meeting transcripts into summaries, structured Minutes of Meeting (MoM), and follow-up actions.

<workflow>
1. When the user provides a transcript URL, call process_url. Present the generated summary to the user afterwards.
2. Use analyze_actions to inspect the latest MoM for follow-up work before proposing any outbound action.
3. Based on the user's request, use create_ticket, schedule_call, or post_slack.
4. When the user asks to email the minutes, call send_email with the recipient address.
</workflow>

<rules>
- Never invent minutes. Every summary, decision, or action item you mention must come from the session, put there by process_url.
- The outbound tools (create_ticket, schedule_call, post_slack, send_email) have real side effects. Only call one when the user asks for that action.
- If a tool reports that no MoM exists, ask the user for a transcript URL instead of retrying.
- Surface tool errors to the user with a short explanation. Do not retry the same failing call more than once.
- Keep responses brief. Summaries and minutes speak for themselves; do not restate them.
</rules>`

// ProviderFactory creates a Provider from a config. Used for /provider hot-swap.
type ProviderFactory func(cfg *config.Config) (provider.Provider, error)

// Agent orchestrates the interactive loop between user, LLM, and tools.
type Agent struct {
	provider        provider.Provider
	executor        *tools.Executor
	config          *config.Config
	session         *session.Session
	store           session.Store
	basePrompt      string // system prompt without identity suffix
	systemPrompt    string
	io              tui.IO
	providerFactory ProviderFactory
}

// New creates a new Agent with the given IO implementation.
// Pass tui.NewPlainIO() for plain terminal mode.
func New(p provider.Provider, exec *tools.Executor, cfg *config.Config, ui tui.IO, store session.Store) *Agent {
	return NewWithSession(p, exec, cfg, ui, store, session.New())
}

// NewWithSession creates a new Agent with an existing session.
func NewWithSession(p provider.Provider, exec *tools.Executor, cfg *config.Config, ui tui.IO, store session.Store, sess *session.Session) *Agent {
	base := defaultSystemPrompt
	if cfg.SystemPrompt != "" {
		base = cfg.SystemPrompt
	}

	a := &Agent{
		provider:   p,
		executor:   exec,
		config:     cfg,
		session:    sess,
		store:      store,
		basePrompt: base,
		io:         ui,
	}
	a.rebuildSystemPrompt()
	return a
}

// Session returns the agent's live session.
func (a *Agent) Session() *session.Session {
	return a.session
}

// SetProviderFactory sets the factory function for /provider hot-swap.
func (a *Agent) SetProviderFactory(f ProviderFactory) {
	a.providerFactory = f
}

// rebuildSystemPrompt appends a dynamic identity suffix to basePrompt.
// Call after changing provider or model.
func (a *Agent) rebuildSystemPrompt() {
	model := a.config.Model
	if model == "" {
		model = a.provider.DefaultModel()
	}
	a.systemPrompt = a.basePrompt + fmt.Sprintf(
		"\n\nYou are powered by %s (model: %s). "+
			"When asked about your identity, state these facts. Never claim to be a different model.",
		a.config.Provider, model)
}

// Run starts the interactive REPL loop.
func (a *Agent) Run(ctx context.Context) error {
	for {
		input, err := a.io.ReadInput()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if input == "" {
			continue
		}

		// Slash commands are intercepted before sending to LLM.
		if strings.HasPrefix(input, "/") {
			handled, shouldQuit := a.handleSlashCommand(input)
			if shouldQuit {
				return nil
			}
			if handled {
				continue
			}
		}

		a.io.UserMessage(input)
		a.session.AddMessage(provider.TextMessage(provider.RoleUser, input))

		if err := a.runTurn(ctx); err != nil {
			if ctx.Err() != nil {
				a.io.SystemMessage("\nInterrupted.")
				_ = a.store.Save(a.session)
				return ctx.Err()
			}
			a.io.Error(err.Error())
		}
	}

	_ = a.store.Save(a.session)
	return nil
}

// RunOnce executes a single prompt and exits (non-interactive mode).
func (a *Agent) RunOnce(ctx context.Context, prompt string) error {
	a.io.UserMessage(prompt)
	a.session.AddMessage(provider.TextMessage(provider.RoleUser, prompt))
	return a.runTurn(ctx)
}

// runTurn wraps one agent turn in its own cancelable context so the UI
// can interrupt streaming (Esc) without killing the whole REPL.
func (a *Agent) runTurn(ctx context.Context) error {
	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if lc, ok := a.io.(tools.LoopCanceller); ok {
		lc.SetLoopCancel(cancel)
		defer lc.ClearLoopCancel()
	}

	err := a.runAgentLoop(turnCtx)
	if err != nil && turnCtx.Err() != nil && ctx.Err() == nil {
		a.io.SystemMessage("Interrupted.")
		return nil
	}
	return err
}

// handleSlashCommand processes built-in commands.
// Returns (handled, shouldQuit).
func (a *Agent) handleSlashCommand(input string) (bool, bool) {
	parts := strings.SplitN(strings.TrimSpace(input), " ", 2)
	cmd := parts[0]
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch cmd {
	case "/quit", "/exit", "/q":
		a.io.SystemMessage("Bye.")
		_ = a.store.Save(a.session)
		return true, true
	case "/clear":
		a.session.Clear()
		a.io.SystemMessage("Conversation cleared. Recorded minutes are kept.")
		return true, false
	case "/history":
		a.io.SystemMessage(formatHistory(a.session.Messages))
		return true, false
	case "/moms":
		a.io.SystemMessage(formatMinutesLog(a.session))
		return true, false
	case "/cost":
		a.io.SystemMessage(fmt.Sprintf("Tokens used: %d", a.session.TokensUsed))
		return true, false
	case "/help":
		return a.handleHelp(), false
	case "/model":
		return a.handleModel(arg), false
	case "/provider":
		return a.handleProvider(arg), false
	case "/config":
		return a.handleConfig(), false
	case "/save":
		return a.handleSave(), false
	case "/sessions":
		return a.handleSessions(), false
	case "/resume":
		return a.handleResume(arg), false
	default:
		return false, false
	}
}

func (a *Agent) handleHelp() bool {
	help := `Available commands:
  /help              Show this help message
  /moms              Show the recorded Minutes of Meeting
  /model <name>      Switch model
  /provider <name>   Switch provider (e.g. /provider anthropic)
  /config            Show current configuration
  /save              Save current session to disk
  /sessions          List saved sessions
  /resume <id>       Resume a saved session (use short ID prefix)
  /history           Show message history
  /cost              Show token usage
  /clear             Clear message history (keeps recorded minutes)
  /quit              Save and exit`
	a.io.SystemMessage(help)
	return true
}

func (a *Agent) handleModel(name string) bool {
	if name == "" {
		a.io.SystemMessage(fmt.Sprintf("Current model: %s\nUsage: /model <name>", a.config.Model))
		return true
	}
	old := a.config.Model
	a.config.Model = name
	if old == "" {
		old = a.provider.DefaultModel()
	}
	a.rebuildSystemPrompt()
	a.io.SystemMessage(fmt.Sprintf("Model switched: %s → %s", old, name))
	return true
}

func (a *Agent) handleProvider(name string) bool {
	if name == "" {
		a.io.SystemMessage(fmt.Sprintf("Current provider: %s\nUsage: /provider <name>", a.config.Provider))
		return true
	}
	if a.providerFactory == nil {
		a.io.Error("Provider hot-swap not available.")
		return true
	}
	oldName := a.config.Provider
	a.config.Provider = name
	// Reset model so the new provider uses its default.
	a.config.Model = ""

	p, err := a.providerFactory(a.config)
	if err != nil {
		// Revert on failure.
		a.config.Provider = oldName
		a.io.Error(fmt.Sprintf("Failed to switch provider: %v", err))
		return true
	}
	a.provider = p
	a.rebuildSystemPrompt()
	a.io.SystemMessage(fmt.Sprintf("Provider switched: %s → %s (model: %s)",
		oldName, name, p.DefaultModel()))
	return true
}

func (a *Agent) handleConfig() bool {
	model := a.config.Model
	if model == "" {
		model = a.provider.DefaultModel()
	}
	info := fmt.Sprintf(`Current configuration:
  Provider:       %s
  Model:          %s
  Max iterations: %d
  Permission:     %s
  Session ID:     %s
  Messages:       %d
  Minutes:        %d
  Tokens used:    %d`,
		a.config.Provider,
		model,
		a.config.MaxIterations,
		a.config.Permissions.Mode,
		a.session.ID,
		len(a.session.Messages),
		len(a.session.Minutes),
		a.session.TokensUsed,
	)
	a.io.SystemMessage(info)
	return true
}

func (a *Agent) handleSave() bool {
	if err := a.store.Save(a.session); err != nil {
		a.io.Error("Save failed: " + err.Error())
		return true
	}
	a.io.SystemMessage(fmt.Sprintf("Session saved: %s (%d messages, %d MoMs)",
		a.session.ID[:8], len(a.session.Messages), len(a.session.Minutes)))
	return true
}

func (a *Agent) handleSessions() bool {
	infos, err := a.store.List()
	if err != nil {
		a.io.Error("Failed to list sessions: " + err.Error())
		return true
	}
	if len(infos) == 0 {
		a.io.SystemMessage("No saved sessions.")
		return true
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Saved sessions (%d):\n", len(infos)))
	for i, info := range infos {
		if i >= 20 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(infos)-20))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s  %s  %d msgs  %d MoMs  %d tokens\n",
			info.ID[:8],
			info.CreatedAt.Format("2006-01-02 15:04"),
			info.Messages,
			info.Minutes,
			info.Tokens,
		))
	}
	sb.WriteString("Use /resume <id> to restore a session.")
	a.io.SystemMessage(sb.String())
	return true
}

func (a *Agent) handleResume(idPrefix string) bool {
	if idPrefix == "" {
		a.io.SystemMessage("Usage: /resume <session-id-prefix>")
		return true
	}

	infos, err := a.store.List()
	if err != nil {
		a.io.Error("Failed to list sessions: " + err.Error())
		return true
	}

	var matches []session.SessionInfo
	for _, info := range infos {
		if strings.HasPrefix(info.ID, idPrefix) {
			matches = append(matches, info)
		}
	}

	switch len(matches) {
	case 0:
		a.io.Error(fmt.Sprintf("No session found matching prefix %q", idPrefix))
		return true
	case 1:
		// Unique match, load it.
	default:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Ambiguous prefix %q matches %d sessions:\n", idPrefix, len(matches)))
		for _, m := range matches {
			sb.WriteString(fmt.Sprintf("  %s  %s\n", m.ID[:12], m.CreatedAt.Format("2006-01-02 15:04")))
		}
		sb.WriteString("Provide a longer prefix.")
		a.io.SystemMessage(sb.String())
		return true
	}

	loaded, err := a.store.Load(matches[0].ID)
	if err != nil {
		a.io.Error("Failed to load session: " + err.Error())
		return true
	}

	// Restore in place: the tool registry holds a pointer to this session.
	*a.session = *loaded
	a.io.SystemMessage(fmt.Sprintf("Resumed session %s (%d messages, %d MoMs)",
		loaded.ID[:8], len(loaded.Messages), len(loaded.Minutes)))
	return true
}

func formatMinutesLog(sess *session.Session) string {
	if len(sess.Minutes) == 0 {
		return "No Minutes of Meeting (MoM) recorded yet. Provide a transcript URL to get started."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Recorded minutes (%d):\n", len(sess.Minutes))
	for i, rec := range sess.Minutes {
		marker := " "
		if i == len(sess.Minutes)-1 {
			marker = "*" // latest, used by the outbound tools
		}
		fmt.Fprintf(&sb, "%s [%d] %s - %s (%d decisions, %d action items)\n",
			marker, i, rec.Minutes.TitleOrDefault(), rec.URL,
			len(rec.Minutes.Decisions), len(rec.Minutes.ActionItems))
	}
	return sb.String()
}

func formatHistory(messages []provider.Message) string {
	if len(messages) == 0 {
		return "No history."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n=== History (%d messages) ===\n", len(messages))
	for i, msg := range messages {
		fmt.Fprintf(&sb, "[%d] %s:\n", i, msg.Role)
		for _, c := range msg.Content {
			switch c.Type {
			case provider.ContentTypeText:
				fmt.Fprintf(&sb, "    text: %s\n", truncate(c.Text, 100))
			case provider.ContentTypeToolUse:
				fmt.Fprintf(&sb, "    tool_use: %s(%s)\n", c.ToolName, truncate(string(c.ToolInput), 60))
			case provider.ContentTypeToolResult:
				status := "ok"
				if c.IsError {
					status = "err"
				}
				fmt.Fprintf(&sb, "    tool_result[%s]: %s\n", status, truncate(c.ToolResult, 60))
			}
		}
	}
	sb.WriteString("===")
	return sb.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
