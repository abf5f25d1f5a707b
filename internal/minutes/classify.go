package minutes

import (
	"regexp"
	"strings"
)

// Category is a bit set of action intents. An item may carry both.
type Category uint8

const (
	// CategoryTicket: the action asks for a tracker ticket.
	CategoryTicket Category = 1 << iota
	// CategorySchedule: the action asks for a call or meeting.
	CategorySchedule
)

// Ticket reports whether the ticket bit is set.
func (c Category) Ticket() bool { return c&CategoryTicket != 0 }

// Schedule reports whether the schedule bit is set.
func (c Category) Schedule() bool { return c&CategorySchedule != 0 }

var (
	ticketPattern   = regexp.MustCompile(`\b(jira|create ticket|ticket)\b`)
	schedulePattern = regexp.MustCompile(`\b(schedule a call|set up a meeting|calendar invite|schedule|invite|call|meeting)\b`)
)

// Classify buckets one action-item text by keyword matching. This is the
// single classification point; the analyzer, the ticket executor and the
// call scheduler all route through it so their notions of "ticket-worthy"
// and "schedule-worthy" cannot drift apart.
func Classify(action string) Category {
	text := strings.ToLower(action)

	var c Category
	if ticketPattern.MatchString(text) {
		c |= CategoryTicket
	}
	if schedulePattern.MatchString(text) {
		c |= CategorySchedule
	}
	return c
}

// SplitActions partitions items into ticket-worthy and schedule-worthy
// slices, preserving list order. Items matching both appear in both.
func SplitActions(items []ActionItem) (tickets, schedules []ActionItem) {
	for _, item := range items {
		c := Classify(item.Action)
		if c.Ticket() {
			tickets = append(tickets, item)
		}
		if c.Schedule() {
			schedules = append(schedules, item)
		}
	}
	return tickets, schedules
}
