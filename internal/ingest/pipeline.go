package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/meetingctl/meetingctl/internal/errs"
	"github.com/meetingctl/meetingctl/internal/minutes"
	"github.com/meetingctl/meetingctl/internal/provider"
	"github.com/meetingctl/meetingctl/internal/session"
)

// Pipeline runs the two-pass transcript flow: fetch the page, generate a
// free-text summary, then extract structured minutes, appending both to
// the session.
type Pipeline struct {
	Provider provider.Provider
	Model    string
	Fetcher  *Fetcher
	Log      zerolog.Logger
}

// Process ingests rawURL into sess. Both passes must succeed before
// anything is appended, so a malformed extraction never leaves a summary
// without its matching MoM.
func (p *Pipeline) Process(ctx context.Context, sess *session.Session, rawURL string) (string, error) {
	const op = "ingest.Process"

	p.Log.Info().Str("url", rawURL).Msg("fetching transcript")
	text, err := p.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "Could not extract any text from the provided URL.", nil
	}

	p.Log.Info().Msg("generating summary")
	summary, err := provider.Generate(ctx, p.Provider, p.Model, summaryPrompt(text))
	if err != nil {
		return "", errs.Wrap(errs.KindRemote, op, err)
	}

	p.Log.Info().Msg("extracting minutes")
	raw, err := provider.Generate(ctx, p.Provider, p.Model, minutesPrompt(text))
	if err != nil {
		return "", errs.Wrap(errs.KindRemote, op, err)
	}

	mom, err := minutes.Decode(raw)
	if err != nil {
		return "", err
	}

	sess.AddSummary(rawURL, summary)
	sess.AddMinutes(rawURL, mom)
	p.Log.Info().Str("title", mom.TitleOrDefault()).Int("action_items", len(mom.ActionItems)).
		Msg("saved summary and minutes to session")

	return fmt.Sprintf("Summary and MoM of %s have been fetched and saved to session.", rawURL), nil
}
