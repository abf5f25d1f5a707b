package cmd

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/meetingctl/meetingctl/internal/config"
	"github.com/meetingctl/meetingctl/internal/ingest"
	"github.com/meetingctl/meetingctl/internal/jira"
	"github.com/meetingctl/meetingctl/internal/logging"
	"github.com/meetingctl/meetingctl/internal/mail"
	"github.com/meetingctl/meetingctl/internal/permission"
	"github.com/meetingctl/meetingctl/internal/provider"
	"github.com/meetingctl/meetingctl/internal/session"
	"github.com/meetingctl/meetingctl/internal/slack"
	"github.com/meetingctl/meetingctl/internal/tools"
)

// runtime bundles everything one agent process needs.
type runtime struct {
	cfg      *config.Config
	provider provider.Provider
	log      zerolog.Logger
	session  *session.Session
	pipeline *ingest.Pipeline
	executor *tools.Executor
}

// buildRuntime wires the provider, the integration clients, the tool
// registry and the executor around one shared session.
func buildRuntime(cfg *config.Config, p provider.Provider, sess *session.Session) *runtime {
	log := logging.New(os.Stderr, cfg.LogLevel)

	pipeline := &ingest.Pipeline{
		Provider: p,
		Model:    cfg.Model,
		Fetcher:  &ingest.Fetcher{},
		Log:      log,
	}

	registry := tools.DefaultRegistry(tools.Deps{
		Session:  sess,
		Pipeline: pipeline,
		Jira:     jira.NewClient(cfg.Jira, log),
		Slack:    slack.NewClient(cfg.Slack, log),
		Mailer:   mail.NewMailer(log),
		SMTP:     cfg.SMTP,
		Schedule: cfg.Schedule,
		Log:      log,
	})

	policy := permission.NewDefaultPolicy(&cfg.Permissions)
	executor := tools.NewExecutor(registry, policy)

	return &runtime{
		cfg:      cfg,
		provider: p,
		log:      log,
		session:  sess,
		pipeline: pipeline,
		executor: executor,
	}
}

// openStore opens the default SQLite session store.
func openStore() (session.Store, error) {
	dbPath, err := session.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	return session.NewSQLiteStore(dbPath)
}
