// Package errs defines the error taxonomy shared by the ingestion pipeline
// and the outbound executors. Callers branch on Kind instead of matching
// message text; the tool layer is the only place errors are flattened into
// user-visible strings.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindConfig: required external configuration is missing or invalid.
	// Always raised before any network activity.
	KindConfig Kind = iota + 1

	// KindFetch: transport or HTTP failure retrieving the transcript.
	KindFetch

	// KindMalformedOutput: model output could not be parsed into the
	// expected structure.
	KindMalformedOutput

	// KindRemote: a downstream API reported failure, via HTTP status or an
	// in-body status flag.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindFetch:
		return "fetch"
	case KindMalformedOutput:
		return "malformed output"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Error carries a kind, the operation that failed, and an optional cause.
type Error struct {
	Kind Kind
	Op   string // e.g. "jira.create_issue"
	Msg  string // human-readable detail
	Err  error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with a formatted message and no cause.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around a cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err (or anything it wraps) carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
