package mail

import (
	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// BuildICS serializes inv as an iCalendar REQUEST so mail clients offer
// to add the event. Each call gets a fresh UID.
func BuildICS(inv Invite, organizerEmail, attendeeEmail string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//meetingctl//Meeting Invite//EN")
	cal.SetCalscale("GREGORIAN")

	event := cal.AddEvent(uuid.NewString())
	event.SetDtStampTime(inv.Start)
	event.SetStartAt(inv.Start)
	event.SetEndAt(inv.End)
	event.SetSummary(inv.Summary)
	event.SetDescription(inv.Description)
	event.SetOrganizer("mailto:"+organizerEmail, ics.WithCN("Organizer"))
	event.AddAttendee(attendeeEmail, ics.ParticipationRoleReqParticipant, ics.WithRSVP(true))

	return cal.Serialize()
}
