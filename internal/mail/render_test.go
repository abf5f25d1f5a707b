package mail

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/meetingctl/meetingctl/internal/minutes"
)

var sampleMinutes = minutes.Minutes{
	Title:     "Q3 Review",
	Summary:   "Reviewed quarterly numbers.",
	Decisions: []string{"Extend the beta", "Hire two engineers"},
	ActionItems: []minutes.ActionItem{
		{Action: "Draft the hiring plan", Owner: "Carol", DueDate: "2026-09-15"},
		{Action: "Send beta survey"},
	},
}

func TestRenderMinutes(t *testing.T) {
	html, err := RenderMinutes(sampleMinutes)
	if err != nil {
		t.Fatalf("RenderMinutes: %v", err)
	}

	for _, want := range []string{
		"Reviewed quarterly numbers.",
		"Extend the beta",
		"Hire two engineers",
		"<td>Draft the hiring plan</td><td>Carol</td><td>2026-09-15</td>",
		"<td>Send beta survey</td><td>N/A</td><td>TBD</td>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderMinutesEscapesHTML(t *testing.T) {
	m := minutes.Minutes{Summary: `<script>alert("x")</script>`}
	html, err := RenderMinutes(m)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("summary must be HTML-escaped")
	}
}

func TestMinutesSubject(t *testing.T) {
	if got := MinutesSubject(sampleMinutes); got != "Minutes of Meeting: Q3 Review" {
		t.Errorf("subject = %q", got)
	}
	if got := MinutesSubject(minutes.Minutes{}); got != "Minutes of Meeting: Untitled Meeting" {
		t.Errorf("default subject = %q", got)
	}
}

func TestNewFollowUpInvite(t *testing.T) {
	now := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	inv := NewFollowUpInvite(now)

	if inv.Summary != "Follow-up Meeting" {
		t.Errorf("summary = %q", inv.Summary)
	}
	if inv.End.Sub(inv.Start) != time.Hour {
		t.Errorf("duration = %v, want 1h", inv.End.Sub(inv.Start))
	}
	if !inv.Start.Equal(now) {
		t.Errorf("start = %v, want %v", inv.Start, now)
	}
}

func TestRenderInvite(t *testing.T) {
	inv := NewFollowUpInvite(time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC))
	html, err := RenderInvite(inv)
	if err != nil {
		t.Fatalf("RenderInvite: %v", err)
	}

	for _, want := range []string{
		"Meeting Invitation: Follow-up Meeting",
		"August 23, 2026",
		"14:30 - 15:30",
		"Follow-up discussion",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("invite HTML missing %q", want)
		}
	}
}

func TestBuildICS(t *testing.T) {
	inv := NewFollowUpInvite(time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC))
	ical := BuildICS(inv, "organizer@example.com", "attendee@example.com")

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:REQUEST",
		"SUMMARY:Follow-up Meeting",
		"DTSTART:20260823T143000Z",
		"DTEND:20260823T153000Z",
		"mailto:organizer@example.com",
		"attendee@example.com",
		"RSVP=TRUE",
	} {
		if !strings.Contains(ical, want) {
			t.Errorf("ICS missing %q:\n%s", want, ical)
		}
	}
}

func TestBuildICSUniqueUIDs(t *testing.T) {
	inv := NewFollowUpInvite(time.Now())
	a := BuildICS(inv, "o@example.com", "a@example.com")
	b := BuildICS(inv, "o@example.com", "a@example.com")

	uid := func(s string) string {
		for _, line := range strings.Split(s, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}
	if ua, ub := uid(a), uid(b); ua == "" || ua == ub {
		t.Errorf("UIDs must be unique and present: %q vs %q", ua, ub)
	}
}

func TestBuildInviteMessageAttachesCalendar(t *testing.T) {
	inv := NewFollowUpInvite(time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC))
	msg, err := buildInviteMessage("sender@example.com", "attendee@example.com", inv)
	if err != nil {
		t.Fatalf("buildInviteMessage: %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.String()

	if !strings.Contains(raw, "Subject: Follow-up Meeting") {
		t.Error("missing subject header")
	}
	if !strings.Contains(raw, "text/calendar") {
		t.Error("missing calendar attachment")
	}
	if !strings.Contains(raw, "invite.ics") {
		t.Error("missing attachment filename")
	}
}

func TestBuildMinutesMessage(t *testing.T) {
	msg, err := buildMinutesMessage("sender@example.com", "team@example.com", sampleMinutes)
	if err != nil {
		t.Fatalf("buildMinutesMessage: %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.String()

	if !strings.Contains(raw, "Subject: Minutes of Meeting: Q3 Review") {
		t.Error("missing subject header")
	}
	if !strings.Contains(raw, "To: team@example.com") {
		t.Error("missing recipient header")
	}
}
