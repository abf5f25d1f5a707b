// Package ingest turns a transcript URL into session records: it fetches
// the page, summarizes it, and extracts structured meeting minutes.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/meetingctl/meetingctl/internal/errs"
)

const (
	fetchTimeout     = 30 * time.Second
	fetchMaxBodySize = 5 * 1024 * 1024 // 5MB
	fetchMaxLines    = 2000            // max lines handed to the model
	fetchUserAgent   = "meetingctl/1.0 (meeting assistant)"
)

// Fetcher downloads a transcript page and normalizes it to plain text.
// Client is injectable for tests; when nil a default client with a 30s
// timeout is used.
type Fetcher struct {
	Client *http.Client
}

// Fetch retrieves rawURL and returns its content as markdown/plain text.
// All failures carry errs.KindFetch.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	const op = "ingest.Fetch"

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errs.New(errs.KindFetch, op, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errs.New(errs.KindFetch, op, "unsupported URL scheme %q", u.Scheme)
	}

	originalHost := u.Host

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	// Refuse cross-domain redirects rather than silently following them.
	wrapped := *client
	wrapped.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return fmt.Errorf("too many redirects")
		}
		if req.URL.Host == originalHost {
			return nil
		}
		return &crossDomainRedirect{URL: req.URL.String()}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return "", errs.Wrap(errs.KindFetch, op, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,text/plain,text/markdown,application/xhtml+xml")

	resp, err := wrapped.Do(req)
	if err != nil {
		var cdr *crossDomainRedirect
		if errors.As(err, &cdr) {
			return "", errs.New(errs.KindFetch, op, "URL redirects to a different domain: %s", cdr.URL)
		}
		if ctx.Err() != nil {
			return "", errs.Wrap(errs.KindFetch, op, ctx.Err())
		}
		return "", errs.Wrap(errs.KindFetch, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", errs.New(errs.KindFetch, op, "HTTP %d %s for %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), u.String())
	}

	limited := io.LimitReader(resp.Body, fetchMaxBodySize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", errs.Wrap(errs.KindFetch, op, err)
	}
	if len(body) > fetchMaxBodySize {
		body = body[:fetchMaxBodySize]
	}

	contentType := resp.Header.Get("Content-Type")
	var content string
	switch {
	case strings.Contains(contentType, "text/html"),
		strings.Contains(contentType, "application/xhtml"):
		md, err := htmltomarkdown.ConvertString(string(body))
		if err != nil {
			content = string(body)
		} else {
			content = md
		}
	case strings.Contains(contentType, "text/markdown"),
		strings.Contains(contentType, "text/plain"):
		content = string(body)
	default:
		if len(body) > 0 && isLikelyText(body) {
			content = string(body)
		} else {
			return "", errs.New(errs.KindFetch, op, "unsupported content type %q", contentType)
		}
	}

	return truncateLines(content, fetchMaxLines), nil
}

// truncateLines keeps only the first maxLines lines.
func truncateLines(s string, maxLines int) string {
	idx := 0
	for i := 0; i < maxLines; i++ {
		next := strings.IndexByte(s[idx:], '\n')
		if next == -1 {
			return s // fewer lines than limit
		}
		idx += next + 1
	}
	return s[:idx] + "\n[Content truncated to first 2000 lines]"
}

// crossDomainRedirect is a sentinel error for cross-domain redirect detection.
type crossDomainRedirect struct {
	URL string
}

func (e *crossDomainRedirect) Error() string {
	return fmt.Sprintf("cross-domain redirect to %s", e.URL)
}

// isLikelyText checks if content is likely text (not binary).
func isLikelyText(data []byte) bool {
	check := data
	if len(check) > 512 {
		check = check[:512]
	}
	for _, b := range check {
		if b == 0 {
			return false
		}
	}
	return true
}
