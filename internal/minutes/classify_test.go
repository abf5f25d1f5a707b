package minutes

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		action   string
		ticket   bool
		schedule bool
	}{
		{"Create ticket for the login bug", true, false},
		{"File a JIRA for the outage", true, false},
		{"Raise a ticket with infra", true, false},
		{"Schedule a call with the vendor", false, true},
		{"Send a calendar invite to the team", false, true},
		{"Set up a meeting about Q4", false, true},
		{"Schedule a follow-up and create ticket for tracking", true, true},
		{"Review the design doc", false, false},
		{"", false, false},
		// Word boundaries: "ticketing" and "recall" should not match.
		{"Update the ticketing docs", false, false},
		{"Recall the last decision", false, false},
	}
	for _, tt := range tests {
		c := Classify(tt.action)
		if c.Ticket() != tt.ticket {
			t.Errorf("Classify(%q).Ticket() = %v, want %v", tt.action, c.Ticket(), tt.ticket)
		}
		if c.Schedule() != tt.schedule {
			t.Errorf("Classify(%q).Schedule() = %v, want %v", tt.action, c.Schedule(), tt.schedule)
		}
	}
}

func TestSplitActions(t *testing.T) {
	items := []ActionItem{
		{Action: "create ticket for follow-up", Owner: "Alice"},
		{Action: "schedule a call with legal", Owner: "Bob"},
		{Action: "update the wiki"},
		{Action: "file a jira and set up a meeting"},
	}

	tickets, schedules := SplitActions(items)

	if len(tickets) != 2 {
		t.Fatalf("tickets = %d, want 2", len(tickets))
	}
	if tickets[0].Owner != "Alice" {
		t.Errorf("first ticket owner = %q", tickets[0].Owner)
	}
	if len(schedules) != 2 {
		t.Fatalf("schedules = %d, want 2", len(schedules))
	}
	// Original order preserved.
	if schedules[0].Owner != "Bob" {
		t.Errorf("first schedule owner = %q", schedules[0].Owner)
	}
	// Dual-intent item lands in both buckets.
	if tickets[1].Action != schedules[1].Action {
		t.Error("dual-intent item should appear in both buckets")
	}
}

func TestSplitActionsEmpty(t *testing.T) {
	tickets, schedules := SplitActions(nil)
	if tickets != nil || schedules != nil {
		t.Error("expected nil slices for no items")
	}
}
