package provider

import (
	"context"
	"errors"
	"testing"
)

// scriptProvider replays a fixed event sequence. Shared with other
// packages' tests via their own stubs; this one exercises Generate.
type scriptProvider struct {
	events []Event
	err    error
}

func (s *scriptProvider) Chat(_ context.Context, _ *ChatRequest) (<-chan Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	ch := make(chan Event, len(s.events))
	for _, ev := range s.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func (s *scriptProvider) Name() string         { return "script" }
func (s *scriptProvider) DefaultModel() string { return "script-1" }

func TestGenerateCollectsText(t *testing.T) {
	p := &scriptProvider{events: []Event{
		{Type: EventTextDelta, TextDelta: "Hello, "},
		{Type: EventTextDelta, TextDelta: "world."},
		{Type: EventDone, Usage: &Usage{InputTokens: 10, OutputTokens: 4}},
	}}

	got, err := Generate(context.Background(), p, "", "say hello")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello, world." {
		t.Errorf("Generate = %q", got)
	}
}

func TestGenerateTrimsWhitespace(t *testing.T) {
	p := &scriptProvider{events: []Event{
		{Type: EventTextDelta, TextDelta: "\n  body text \n"},
		{Type: EventDone, Usage: &Usage{}},
	}}

	got, err := Generate(context.Background(), p, "m", "prompt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "body text" {
		t.Errorf("Generate = %q", got)
	}
}

func TestGenerateStreamError(t *testing.T) {
	p := &scriptProvider{events: []Event{
		{Type: EventTextDelta, TextDelta: "partial"},
		{Type: EventError, Error: errors.New("stream cut")},
	}}

	_, err := Generate(context.Background(), p, "", "prompt")
	if err == nil || err.Error() != "stream cut" {
		t.Errorf("err = %v, want stream cut", err)
	}
}

func TestGenerateRequestError(t *testing.T) {
	p := &scriptProvider{err: errors.New("no api key")}
	if _, err := Generate(context.Background(), p, "", "prompt"); err == nil {
		t.Error("expected error")
	}
}

func TestTextMessage(t *testing.T) {
	msg := TextMessage(RoleUser, "hi")
	if msg.Role != RoleUser || len(msg.Content) != 1 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Content[0].Type != ContentTypeText || msg.Content[0].Text != "hi" {
		t.Errorf("unexpected content: %+v", msg.Content[0])
	}
}
