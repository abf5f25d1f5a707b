package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meetingctl/meetingctl/internal/errs"
	"github.com/meetingctl/meetingctl/internal/provider"
	"github.com/meetingctl/meetingctl/internal/session"
)

// queueProvider replies to successive Generate calls with queued texts.
type queueProvider struct {
	replies []string
	calls   int
}

func (q *queueProvider) Chat(_ context.Context, _ *provider.ChatRequest) (<-chan provider.Event, error) {
	reply := ""
	if q.calls < len(q.replies) {
		reply = q.replies[q.calls]
	}
	q.calls++
	ch := make(chan provider.Event, 2)
	ch <- provider.Event{Type: provider.EventTextDelta, TextDelta: reply}
	ch <- provider.Event{Type: provider.EventDone, Usage: &provider.Usage{}}
	close(ch)
	return ch, nil
}

func (q *queueProvider) Name() string         { return "queue" }
func (q *queueProvider) DefaultModel() string { return "queue-1" }

const transcriptHTML = `<html><body>
<h1>Weekly Sync</h1>
<p>Alice: we need to create a ticket for the login bug.</p>
<p>Bob: let's schedule a call with the infra team next week.</p>
</body></html>`

const momJSON = "```json\n" + `{
  "title": "Weekly Sync",
  "summary": "Discussed the login bug and infra follow-up.",
  "decisions": ["Fix login before release"],
  "action_items": [
    {"action": "Create ticket for the login bug", "owner": "Alice", "due_date": "2026-09-01"},
    {"action": "Schedule a call with the infra team", "owner": "Bob", "due_date": ""}
  ],
  "attendees": ["Alice", "Bob"]
}` + "\n```"

func newTranscriptServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(transcriptHTML))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProcessAppendsSummaryAndMinutes(t *testing.T) {
	srv := newTranscriptServer(t)
	p := &queueProvider{replies: []string{"A short summary.", momJSON}}

	pipe := &Pipeline{Provider: p, Fetcher: &Fetcher{Client: srv.Client()}}
	sess := session.New()

	msg, err := pipe.Process(context.Background(), sess, srv.URL)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(msg, "fetched and saved to session") {
		t.Errorf("confirmation = %q", msg)
	}

	if len(sess.Summaries) != 1 || sess.Summaries[0].Summary != "A short summary." {
		t.Errorf("summaries = %+v", sess.Summaries)
	}
	rec, ok := sess.LatestMinutes()
	if !ok {
		t.Fatal("expected a MoM record")
	}
	if rec.URL != srv.URL {
		t.Errorf("URL = %q, want %q", rec.URL, srv.URL)
	}
	if rec.Minutes.Title != "Weekly Sync" {
		t.Errorf("Title = %q", rec.Minutes.Title)
	}
	if len(rec.Minutes.ActionItems) != 2 {
		t.Fatalf("ActionItems len = %d, want 2", len(rec.Minutes.ActionItems))
	}
	if rec.Minutes.ActionItems[0].Owner != "Alice" {
		t.Errorf("owner = %q", rec.Minutes.ActionItems[0].Owner)
	}
	if p.calls != 2 {
		t.Errorf("provider calls = %d, want 2", p.calls)
	}
}

func TestProcessMalformedExtractionLeavesSessionUntouched(t *testing.T) {
	srv := newTranscriptServer(t)
	p := &queueProvider{replies: []string{"A short summary.", "sorry, I cannot produce JSON"}}

	pipe := &Pipeline{Provider: p, Fetcher: &Fetcher{Client: srv.Client()}}
	sess := session.New()

	_, err := pipe.Process(context.Background(), sess, srv.URL)
	if !errs.IsKind(err, errs.KindMalformedOutput) {
		t.Fatalf("err = %v, want KindMalformedOutput", err)
	}
	if len(sess.Summaries) != 0 || len(sess.Minutes) != 0 {
		t.Error("a failed extraction must not append partial records")
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errs.IsKind(err, errs.KindFetch) {
		t.Fatalf("err = %v, want KindFetch", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("err = %v, want status in message", err)
	}
}

func TestFetchRejectsCrossDomainRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://elsewhere.example.com/page", http.StatusFound)
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errs.IsKind(err, errs.KindFetch) {
		t.Fatalf("err = %v, want KindFetch", err)
	}
	if !strings.Contains(err.Error(), "different domain") {
		t.Errorf("err = %v, want redirect refusal", err)
	}
}

func TestFetchRejectsBadScheme(t *testing.T) {
	f := &Fetcher{}
	_, err := f.Fetch(context.Background(), "ftp://example.com/minutes.txt")
	if !errs.IsKind(err, errs.KindFetch) {
		t.Fatalf("err = %v, want KindFetch", err)
	}
}

func TestFetchConvertsHTML(t *testing.T) {
	srv := newTranscriptServer(t)

	f := &Fetcher{Client: srv.Client()}
	text, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if strings.Contains(text, "<p>") {
		t.Error("HTML tags should be converted to markdown")
	}
	if !strings.Contains(text, "Weekly Sync") {
		t.Errorf("content lost in conversion: %q", text)
	}
}
