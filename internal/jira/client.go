// Package jira creates issues from meeting action items via the Jira
// Cloud REST API v3.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetingctl/meetingctl/internal/config"
	"github.com/meetingctl/meetingctl/internal/errs"
	"github.com/meetingctl/meetingctl/internal/minutes"
)

const issueTypeTask = "10001"

// Issue is a created Jira issue.
type Issue struct {
	Key string
	URL string
}

// Client talks to one Jira site with basic auth.
type Client struct {
	cfg    config.JiraConfig
	client *http.Client
	log    zerolog.Logger
}

func NewClient(cfg config.JiraConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

// adfDoc is the minimal Atlassian Document Format wrapper Jira Cloud
// requires for issue descriptions.
type adfDoc struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []adfNode `json:"content"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []adfNode `json:"content,omitempty"`
}

type projectRef struct {
	Key string `json:"key"`
}

type issueTypeRef struct {
	ID string `json:"id"`
}

type issueFields struct {
	Project     projectRef   `json:"project"`
	Summary     string       `json:"summary"`
	Description adfDoc       `json:"description"`
	IssueType   issueTypeRef `json:"issuetype"`
}

type createIssueRequest struct {
	Fields issueFields `json:"fields"`
}

// CreateIssue files one issue for an action item. The summary carries the
// action text; the description records owner and due date.
func (c *Client) CreateIssue(ctx context.Context, item minutes.ActionItem) (Issue, error) {
	const op = "jira.CreateIssue"

	if err := c.cfg.Validate(); err != nil {
		return Issue{}, err
	}

	description := fmt.Sprintf("Action from MOM:\n%s\n\nOwner: %s\nDue Date: %s",
		item.Action, item.OwnerOrDefault(), item.DueDateOrDefault("N/A"))

	var req createIssueRequest
	req.Fields.Project.Key = c.cfg.ProjectKey
	req.Fields.Summary = "Meeting Action: " + item.Action
	req.Fields.Description = adfDoc{
		Type:    "doc",
		Version: 1,
		Content: []adfNode{{
			Type:    "paragraph",
			Content: []adfNode{{Type: "text", Text: description}},
		}},
	}
	req.Fields.IssueType.ID = issueTypeTask

	payload, err := json.Marshal(req)
	if err != nil {
		return Issue{}, errs.Wrap(errs.KindRemote, op, err)
	}

	endpoint := c.cfg.URL + "/rest/api/3/issue"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return Issue{}, errs.Wrap(errs.KindRemote, op, err)
	}
	httpReq.SetBasicAuth(c.cfg.Username, c.cfg.APIToken)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("project", c.cfg.ProjectKey).Str("summary", req.Fields.Summary).
		Msg("creating jira issue")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Issue{}, errs.Wrap(errs.KindRemote, op, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Issue{}, errs.New(errs.KindRemote, op, "jira returned HTTP %d: %s",
			resp.StatusCode, truncate(string(body), 200))
	}

	var created struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return Issue{}, errs.Wrap(errs.KindRemote, op, err)
	}
	if created.Key == "" {
		return Issue{}, errs.New(errs.KindRemote, op, "jira response missing issue key")
	}

	return Issue{
		Key: created.Key,
		URL: c.cfg.URL + "/browse/" + created.Key,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
