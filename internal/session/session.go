// Package session holds per-conversation state: the agent message history
// and the append-only logs of extracted meeting minutes and summaries that
// the outbound tools read from.
package session

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/meetingctl/meetingctl/internal/minutes"
	"github.com/meetingctl/meetingctl/internal/provider"
)

// MinutesRecord ties one extracted MoM to the transcript URL it came from.
type MinutesRecord struct {
	URL     string          `json:"url"`
	Minutes minutes.Minutes `json:"mom"`
}

// SummaryRecord ties one free-text summary to its transcript URL.
type SummaryRecord struct {
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Session is the state for one conversation. The minutes and summary logs
// are append-only: ingestion appends, consumers read the latest entry.
type Session struct {
	ID         string
	Messages   []provider.Message
	Minutes    []MinutesRecord
	Summaries  []SummaryRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TokensUsed int
}

// New creates a session with a fresh random ID.
func New() *Session {
	return &Session{
		ID:        newID(),
		CreatedAt: time.Now(),
	}
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x", b)
}

// AddMessage appends a message to the conversation history.
func (s *Session) AddMessage(msg provider.Message) {
	s.Messages = append(s.Messages, msg)
}

// AddMinutes appends an extracted MoM to the minutes log.
func (s *Session) AddMinutes(url string, m minutes.Minutes) {
	s.Minutes = append(s.Minutes, MinutesRecord{URL: url, Minutes: m})
}

// AddSummary appends a free-text summary to the summary log.
func (s *Session) AddSummary(url, summary string) {
	s.Summaries = append(s.Summaries, SummaryRecord{URL: url, Summary: summary})
}

// LatestMinutes returns the most recent MoM record. ok is false when
// nothing has been ingested yet; every consumer treats that as "no MoM"
// rather than an error.
func (s *Session) LatestMinutes() (MinutesRecord, bool) {
	if len(s.Minutes) == 0 {
		return MinutesRecord{}, false
	}
	return s.Minutes[len(s.Minutes)-1], true
}

// Clear resets the message history and token counter. The minutes and
// summary logs survive: they are the product of the conversation, not
// part of the model context.
func (s *Session) Clear() {
	s.Messages = nil
	s.TokensUsed = 0
}

// EstimateTokens returns a rough token estimate (total chars / 4).
func (s *Session) EstimateTokens() int {
	total := 0
	for _, msg := range s.Messages {
		for _, c := range msg.Content {
			total += len(c.Text)
			total += len(c.ToolResult)
			total += len(c.ToolInput)
		}
	}
	return total / 4
}
