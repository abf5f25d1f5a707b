// Package slack posts meeting minutes to a channel via chat.postMessage.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetingctl/meetingctl/internal/config"
	"github.com/meetingctl/meetingctl/internal/errs"
	"github.com/meetingctl/meetingctl/internal/minutes"
)

const defaultBaseURL = "https://slack.com"

// Client posts messages with a bot token. BaseURL is overridable for tests.
type Client struct {
	cfg    config.SlackConfig
	client *http.Client
	log    zerolog.Logger
}

func NewClient(cfg config.SlackConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	TS    string `json:"ts"`
}

// PostMinutes formats m as a mrkdwn message and posts it to channel.
// Slack reports API failures with HTTP 200 and ok=false; both transport
// errors and ok=false surface as errs.KindRemote.
func (c *Client) PostMinutes(ctx context.Context, channel string, m minutes.Minutes) error {
	const op = "slack.PostMinutes"

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(postMessageRequest{
		Channel: channel,
		Text:    FormatMinutes(m),
	})
	if err != nil {
		return errs.Wrap(errs.KindRemote, op, err)
	}

	base := c.cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, "POST", base+"/api/chat.postMessage", bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(errs.KindRemote, op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("channel", channel).Msg("posting minutes to slack")

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Wrap(errs.KindRemote, op, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.New(errs.KindRemote, op, "slack returned HTTP %d", resp.StatusCode)
	}

	var parsed postMessageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return errs.Wrap(errs.KindRemote, op, err)
	}
	if !parsed.OK {
		return errs.New(errs.KindRemote, op, "slack rejected message: %s", parsed.Error)
	}
	return nil
}

// FormatMinutes renders m in Slack mrkdwn with summary, decisions, and
// action items sections.
func FormatMinutes(m minutes.Minutes) string {
	var decisions []string
	for _, d := range m.Decisions {
		decisions = append(decisions, "- • "+d)
	}

	var actions []string
	for _, a := range m.ActionItems {
		actions = append(actions, fmt.Sprintf("- *Action:* %s\n  - *Owner:* %s\n  - *Due Date:* %s",
			a.Action, a.OwnerOrDefault(), a.DueDateOrDefault("N/A")))
	}

	return fmt.Sprintf("📌 *Minutes of Meeting: %s*\n\n*Summary*\n%s\n\n*Decisions*\n%s\n\n*Action Items*\n%s",
		m.TitleOrDefault(),
		m.SummaryOrDefault(),
		strings.Join(decisions, "\n"),
		strings.Join(actions, "\n"))
}
