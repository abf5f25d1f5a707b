// Package mail renders and sends the outbound emails: the formatted
// minutes document and the calendar invite.
package mail

import (
	"html/template"
	"strings"
	"time"

	"github.com/meetingctl/meetingctl/internal/errs"
	"github.com/meetingctl/meetingctl/internal/minutes"
)

var minutesTmpl = template.Must(template.New("minutes").Parse(`<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 700px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px; }
      h2, h3 { color: #0056b3; }
      ul { list-style-type: none; padding: 0; }
      li { margin-bottom: 10px; }
      table { width: 100%; border-collapse: collapse; margin-top: 15px; }
      th, td { padding: 12px; border: 1px solid #ccc; text-align: left; }
      th { background-color: #f2f2f2; }
    </style>
  </head>
  <body>
    <div class="container">
      <h3>Summary</h3>
      <p>{{.Summary}}</p>
      <h3>Decisions</h3>
      <ul>
{{- range .Decisions}}
        <li>&#x2022; {{.}}</li>
{{- end}}
      </ul>
      <h3>Action Items</h3>
      <table>
        <thead>
          <tr>
            <th>Action</th>
            <th>Owner</th>
            <th>Due Date</th>
          </tr>
        </thead>
        <tbody>
{{- range .Items}}
          <tr><td>{{.Action}}</td><td>{{.Owner}}</td><td>{{.DueDate}}</td></tr>
{{- end}}
        </tbody>
      </table>
    </div>
  </body>
</html>
`))

var inviteTmpl = template.Must(template.New("invite").Parse(`<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px; }
      h2, h3 { color: #0056b3; }
      p { margin-bottom: 10px; }
    </style>
  </head>
  <body>
    <div class="container">
      <h2>Meeting Invitation: {{.Summary}}</h2>
      <h3>Event Details</h3>
      <p><strong>Date:</strong> {{.Date}}</p>
      <p><strong>Time:</strong> {{.StartTime}} - {{.EndTime}}</p>
      <p><strong>Description:</strong><br>{{.Description}}</p>
      <p>This event can be added to your calendar automatically by accepting the invitation. Thank you!</p>
    </div>
  </body>
</html>
`))

type minutesRow struct {
	Action  string
	Owner   string
	DueDate string
}

type minutesView struct {
	Summary   string
	Decisions []string
	Items     []minutesRow
}

// MinutesSubject returns the subject line for a minutes email.
func MinutesSubject(m minutes.Minutes) string {
	title := m.Title
	if title == "" {
		title = "Untitled Meeting"
	}
	return "Minutes of Meeting: " + title
}

// RenderMinutes produces the HTML body for a minutes email. Missing due
// dates render as TBD.
func RenderMinutes(m minutes.Minutes) (string, error) {
	view := minutesView{
		Summary:   m.SummaryOrDefault(),
		Decisions: m.Decisions,
	}
	for _, a := range m.ActionItems {
		view.Items = append(view.Items, minutesRow{
			Action:  a.Action,
			Owner:   a.OwnerOrDefault(),
			DueDate: a.DueDateOrDefault("TBD"),
		})
	}

	var sb strings.Builder
	if err := minutesTmpl.Execute(&sb, view); err != nil {
		return "", errs.Wrap(errs.KindMalformedOutput, "mail.RenderMinutes", err)
	}
	return sb.String(), nil
}

// Invite describes the follow-up meeting to send an invitation for.
type Invite struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// NewFollowUpInvite builds the standard follow-up invite: starts now,
// runs one hour.
func NewFollowUpInvite(now time.Time) Invite {
	start := now.UTC()
	return Invite{
		Summary:     "Follow-up Meeting",
		Description: "Follow-up discussion from the previous meeting's transcript.",
		Start:       start,
		End:         start.Add(time.Hour),
	}
}

// RenderInvite produces the HTML body for an invite email.
func RenderInvite(inv Invite) (string, error) {
	view := struct {
		Summary     string
		Description string
		Date        string
		StartTime   string
		EndTime     string
	}{
		Summary:     inv.Summary,
		Description: inv.Description,
		Date:        inv.Start.Format("January 2, 2006"),
		StartTime:   inv.Start.Format("15:04"),
		EndTime:     inv.End.Format("15:04"),
	}

	var sb strings.Builder
	if err := inviteTmpl.Execute(&sb, view); err != nil {
		return "", errs.Wrap(errs.KindMalformedOutput, "mail.RenderInvite", err)
	}
	return sb.String(), nil
}
