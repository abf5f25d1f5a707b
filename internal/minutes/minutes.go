// Package minutes holds the structured Minutes-of-Meeting model extracted
// from transcripts, the decoder for model output, and the action-item
// classifier shared by the analyzer and the outbound executors.
package minutes

// ActionItem is a single action extracted from a meeting.
type ActionItem struct {
	Action  string `json:"action"`
	Owner   string `json:"owner,omitempty"`
	DueDate string `json:"due_date,omitempty"`
}

// OwnerOrDefault returns the owner, or "N/A" when the model omitted it.
func (a ActionItem) OwnerOrDefault() string {
	if a.Owner == "" {
		return "N/A"
	}
	return a.Owner
}

// DueDateOrDefault returns the due date, or def when the model omitted it.
// Callers pass "N/A" (ticket description) or "TBD" (email table).
func (a ActionItem) DueDateOrDefault(def string) string {
	if a.DueDate == "" {
		return def
	}
	return a.DueDate
}

// Minutes is one extracted Minutes-of-Meeting record. All fields are
// optional on the wire; readers apply defaults instead of validating.
type Minutes struct {
	Title       string       `json:"title,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	Decisions   []string     `json:"decisions,omitempty"`
	ActionItems []ActionItem `json:"action_items,omitempty"`
	Attendees   []string     `json:"attendees,omitempty"`
}

// TitleOrDefault returns the title, or a generic fallback.
func (m Minutes) TitleOrDefault() string {
	if m.Title == "" {
		return "Meeting Minutes"
	}
	return m.Title
}

// SummaryOrDefault returns the summary, or a generic fallback.
func (m Minutes) SummaryOrDefault() string {
	if m.Summary == "" {
		return "No summary provided."
	}
	return m.Summary
}
