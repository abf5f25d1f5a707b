package mail

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/meetingctl/meetingctl/internal/config"
	"github.com/meetingctl/meetingctl/internal/errs"
	"github.com/meetingctl/meetingctl/internal/minutes"
)

// Mailer delivers minutes documents and calendar invites over implicit
// TLS (SMTPS), matching the submission setup of the configured providers.
type Mailer struct {
	log zerolog.Logger
}

func NewMailer(log zerolog.Logger) *Mailer {
	return &Mailer{log: log}
}

// SendMinutes emails mom to recipient as an HTML document.
func (m *Mailer) SendMinutes(ctx context.Context, cfg config.SMTPConfig, to string, mom minutes.Minutes) error {
	const op = "mail.SendMinutes"

	if err := cfg.Validate(); err != nil {
		return err
	}

	msg, err := buildMinutesMessage(cfg.Username, to, mom)
	if err != nil {
		return err
	}

	m.log.Info().Str("to", to).Str("subject", MinutesSubject(mom)).Msg("sending minutes email")
	return m.send(ctx, op, cfg.Host, cfg.PortNumber(), cfg.Username, cfg.Password, msg)
}

// SendInvite emails a follow-up invite to the configured attendee, with
// the iCalendar REQUEST attached so clients can add the event directly.
func (m *Mailer) SendInvite(ctx context.Context, cfg config.ScheduleConfig, inv Invite) error {
	const op = "mail.SendInvite"

	if err := cfg.Validate(); err != nil {
		return err
	}

	msg, err := buildInviteMessage(cfg.SenderEmail, cfg.Attendee, inv)
	if err != nil {
		return err
	}

	m.log.Info().Str("to", cfg.Attendee).Time("start", inv.Start).Msg("sending calendar invite")
	return m.send(ctx, op, cfg.Host, cfg.Port, cfg.SenderEmail, cfg.SenderPassword, msg)
}

func buildMinutesMessage(from, to string, mom minutes.Minutes) (*gomail.Msg, error) {
	const op = "mail.SendMinutes"

	html, err := RenderMinutes(mom)
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat("Meeting Support", from); err != nil {
		return nil, errs.Wrap(errs.KindConfig, op, err)
	}
	if err := msg.To(to); err != nil {
		return nil, errs.Wrap(errs.KindConfig, op, err)
	}
	msg.Subject(MinutesSubject(mom))
	msg.SetBodyString(gomail.TypeTextHTML, html)
	return msg, nil
}

func buildInviteMessage(from, to string, inv Invite) (*gomail.Msg, error) {
	const op = "mail.SendInvite"

	html, err := RenderInvite(inv)
	if err != nil {
		return nil, err
	}
	ical := BuildICS(inv, from, to)

	msg := gomail.NewMsg()
	if err := msg.FromFormat("Meeting Invitation", from); err != nil {
		return nil, errs.Wrap(errs.KindConfig, op, err)
	}
	if err := msg.To(to); err != nil {
		return nil, errs.Wrap(errs.KindConfig, op, err)
	}
	msg.Subject(inv.Summary)
	msg.SetBodyString(gomail.TypeTextPlain, inv.Description)
	msg.AddAlternativeString(gomail.TypeTextHTML, html)
	if err := msg.AttachReader("invite.ics", strings.NewReader(ical),
		gomail.WithFileContentType("text/calendar; method=REQUEST; charset=UTF-8")); err != nil {
		return nil, errs.Wrap(errs.KindRemote, op, err)
	}
	return msg, nil
}

func (m *Mailer) send(ctx context.Context, op, host string, port int, username, password string, msg *gomail.Msg) error {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
	)
	if err != nil {
		return errs.Wrap(errs.KindConfig, op, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errs.Wrap(errs.KindRemote, op, err)
	}
	return nil
}
