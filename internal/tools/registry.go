package tools

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/meetingctl/meetingctl/internal/config"
	"github.com/meetingctl/meetingctl/internal/ingest"
	"github.com/meetingctl/meetingctl/internal/jira"
	"github.com/meetingctl/meetingctl/internal/mail"
	"github.com/meetingctl/meetingctl/internal/session"
	"github.com/meetingctl/meetingctl/internal/slack"
)

// Registry holds the registered tools.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns every registered tool, sorted by name.
func (r *Registry) All() []Tool {
	result := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Deps wires the tools to their shared session and integration clients.
// All tools in one registry share one session; the process owns exactly
// one live session at a time.
type Deps struct {
	Session  *session.Session
	Pipeline *ingest.Pipeline
	Jira     *jira.Client
	Slack    *slack.Client
	Mailer   *mail.Mailer
	SMTP     config.SMTPConfig
	Schedule config.ScheduleConfig
	Log      zerolog.Logger
}

// DefaultRegistry creates the registry with every built-in tool.
func DefaultRegistry(d Deps) *Registry {
	r := NewRegistry()
	r.Register(&ProcessURLTool{deps: d})
	r.Register(&AnalyzeActionsTool{deps: d})
	r.Register(&CreateTicketTool{deps: d})
	r.Register(&ScheduleCallTool{deps: d})
	r.Register(&PostSlackTool{deps: d})
	r.Register(&SendEmailTool{deps: d})
	return r
}
