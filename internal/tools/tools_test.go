package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/meetingctl/meetingctl/internal/config"
	"github.com/meetingctl/meetingctl/internal/jira"
	"github.com/meetingctl/meetingctl/internal/logging"
	"github.com/meetingctl/meetingctl/internal/mail"
	"github.com/meetingctl/meetingctl/internal/minutes"
	"github.com/meetingctl/meetingctl/internal/session"
	"github.com/meetingctl/meetingctl/internal/slack"
)

// countingServer tracks how many requests reach an integration endpoint.
func countingServer(t *testing.T, response string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func sessionWithMinutes(items ...minutes.ActionItem) *session.Session {
	s := session.New()
	s.AddMinutes("https://example.com/t", minutes.Minutes{
		Title:       "Weekly Sync",
		Summary:     "Discussed follow-ups.",
		ActionItems: items,
	})
	return s
}

func TestAnalyzeActionsEmptySession(t *testing.T) {
	tool := &AnalyzeActionsTool{deps: Deps{Session: session.New()}}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Content != noMomMsg {
		t.Errorf("Content = %q", res.Content)
	}
}

func TestAnalyzeActionsNoItems(t *testing.T) {
	tool := &AnalyzeActionsTool{deps: Deps{Session: sessionWithMinutes()}}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Content != noActionsMsg {
		t.Errorf("Content = %q", res.Content)
	}
}

func TestAnalyzeActionsSuggestions(t *testing.T) {
	sess := sessionWithMinutes(
		minutes.ActionItem{Action: "Create ticket for the login bug"},
		minutes.ActionItem{Action: "Schedule a call with the infra team"},
		minutes.ActionItem{Action: "Write the release notes"},
	)
	tool := &AnalyzeActionsTool{deps: Deps{Session: sess}}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"I can create JIRA tickets",
		"'Create ticket for the login bug'",
		"I can schedule calls",
		"'Schedule a call with the infra team'",
		"I can also send the MoM to a Slack channel.",
	} {
		if !strings.Contains(res.Content, want) {
			t.Errorf("missing %q in:\n%s", want, res.Content)
		}
	}
	if strings.Contains(res.Content, "release notes") {
		t.Error("unmatched items must not be suggested")
	}
}

func TestAnalyzeActionsNoMatches(t *testing.T) {
	sess := sessionWithMinutes(minutes.ActionItem{Action: "Write the release notes"})
	tool := &AnalyzeActionsTool{deps: Deps{Session: sess}}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Content, "did not find any specific action items") {
		t.Errorf("Content = %q", res.Content)
	}
}

func TestCreateTicketEmptySessionNoNetworkCall(t *testing.T) {
	srv, calls := countingServer(t, `{"key":"KAN-1"}`)
	deps := Deps{
		Session: session.New(),
		Jira: jira.NewClient(config.JiraConfig{
			URL: srv.URL, Username: "u", APIToken: "t", ProjectKey: "KAN",
		}, logging.Nop()),
	}

	tool := &CreateTicketTool{deps: deps}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Content != noMomMsg {
		t.Errorf("Content = %q", res.Content)
	}
	if calls.Load() != 0 {
		t.Errorf("jira calls = %d, want 0", calls.Load())
	}
}

func TestCreateTicketOnePerMatchingItem(t *testing.T) {
	srv, calls := countingServer(t, `{"key":"KAN-1"}`)
	deps := Deps{
		Session: sessionWithMinutes(
			minutes.ActionItem{Action: "Create ticket for the login bug", Owner: "Alice"},
			minutes.ActionItem{Action: "Raise a jira for the flaky test", Owner: "Bob"},
			minutes.ActionItem{Action: "Write the release notes"},
		),
		Jira: jira.NewClient(config.JiraConfig{
			URL: srv.URL, Username: "u", APIToken: "t", ProjectKey: "KAN",
		}, logging.Nop()),
	}

	tool := &CreateTicketTool{deps: deps}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("jira calls = %d, want 2", calls.Load())
	}
	if strings.Count(res.Content, "Created JIRA ticket") != 2 {
		t.Errorf("Content = %q", res.Content)
	}
}

func TestCreateTicketNoMatches(t *testing.T) {
	srv, calls := countingServer(t, `{"key":"KAN-1"}`)
	deps := Deps{
		Session: sessionWithMinutes(minutes.ActionItem{Action: "Write the release notes"}),
		Jira: jira.NewClient(config.JiraConfig{
			URL: srv.URL, Username: "u", APIToken: "t", ProjectKey: "KAN",
		}, logging.Nop()),
	}

	tool := &CreateTicketTool{deps: deps}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Content, "No ticket-related action items") {
		t.Errorf("Content = %q", res.Content)
	}
	if calls.Load() != 0 {
		t.Errorf("jira calls = %d, want 0", calls.Load())
	}
}

func TestPostSlackEmptySessionNoNetworkCall(t *testing.T) {
	srv, calls := countingServer(t, `{"ok":true}`)
	deps := Deps{
		Session: session.New(),
		Slack:   slack.NewClient(config.SlackConfig{APIToken: "xoxb", BaseURL: srv.URL}, logging.Nop()),
	}

	tool := &PostSlackTool{deps: deps}
	res, err := tool.Execute(context.Background(), json.RawMessage(`{"channel":"C1"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res.Content != noMomMsg {
		t.Errorf("Content = %q", res.Content)
	}
	if calls.Load() != 0 {
		t.Errorf("slack calls = %d, want 0", calls.Load())
	}
}

func TestPostSlackSuccess(t *testing.T) {
	srv, calls := countingServer(t, `{"ok":true}`)
	deps := Deps{
		Session: sessionWithMinutes(minutes.ActionItem{Action: "anything"}),
		Slack:   slack.NewClient(config.SlackConfig{APIToken: "xoxb", BaseURL: srv.URL}, logging.Nop()),
	}

	tool := &PostSlackTool{deps: deps}
	res, err := tool.Execute(context.Background(), json.RawMessage(`{"channel":"C42"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res.Content != "MOM successfully posted to Slack channel C42." {
		t.Errorf("Content = %q", res.Content)
	}
	if calls.Load() != 1 {
		t.Errorf("slack calls = %d, want 1", calls.Load())
	}
}

func TestPostSlackMissingChannel(t *testing.T) {
	tool := &PostSlackTool{deps: Deps{Session: session.New()}}
	if _, err := tool.Execute(context.Background(), json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for missing channel")
	}
}

func TestSendEmailEmptySession(t *testing.T) {
	tool := &SendEmailTool{deps: Deps{Session: session.New(), Mailer: mail.NewMailer(logging.Nop())}}
	res, err := tool.Execute(context.Background(), json.RawMessage(`{"to_email":"a@example.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res.Content != "Error: No Minutes of Meeting (MoM) found in the session." {
		t.Errorf("Content = %q", res.Content)
	}
}

func TestSendEmailMissingCredentials(t *testing.T) {
	deps := Deps{
		Session: sessionWithMinutes(minutes.ActionItem{Action: "anything"}),
		Mailer:  mail.NewMailer(logging.Nop()),
	}
	tool := &SendEmailTool{deps: deps}
	res, err := tool.Execute(context.Background(), json.RawMessage(`{"to_email":"a@example.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.Contains(res.Content, "SMTP_HOST") {
		t.Errorf("result = %+v, want SMTP config error", res)
	}
}

func TestScheduleCallEmptySession(t *testing.T) {
	tool := &ScheduleCallTool{deps: Deps{Session: session.New()}}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Content != "Error: No MoM found in session to create a call from." {
		t.Errorf("Content = %q", res.Content)
	}
}

func TestScheduleCallNoMatchingItems(t *testing.T) {
	deps := Deps{
		Session: sessionWithMinutes(minutes.ActionItem{Action: "Write the release notes"}),
		Mailer:  mail.NewMailer(logging.Nop()),
	}
	tool := &ScheduleCallTool{deps: deps}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Content, "No scheduling-related action items") {
		t.Errorf("Content = %q", res.Content)
	}
}

func TestScheduleCallMissingCredentials(t *testing.T) {
	deps := Deps{
		Session: sessionWithMinutes(minutes.ActionItem{Action: "Schedule a call with the team"}),
		Mailer:  mail.NewMailer(logging.Nop()),
	}
	tool := &ScheduleCallTool{deps: deps}
	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.Contains(res.Content, "SENDER_EMAIL") {
		t.Errorf("result = %+v, want schedule config error", res)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(Deps{Session: session.New()})
	all := r.All()
	want := []string{"analyze_actions", "create_ticket", "post_slack", "process_url", "schedule_call", "send_email"}
	if len(all) != len(want) {
		t.Fatalf("registry has %d tools, want %d", len(all), len(want))
	}
	for i, name := range want {
		if all[i].Name() != name {
			t.Errorf("tool[%d] = %q, want %q", i, all[i].Name(), name)
		}
	}
}
