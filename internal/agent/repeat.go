package agent

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/meetingctl/meetingctl/internal/provider"
)

// repeatAction is the action recommended by the repeat-call detector.
type repeatAction int

const (
	repeatNone repeatAction = iota
	repeatWarn
	repeatStop
)

const (
	repeatWarnThreshold = 3
	repeatStopThreshold = 5
)

// repeatCallDetector tracks consecutive identical tool call batches to
// detect loops where the model keeps issuing the same calls. With
// side-effecting executors this matters twice: the loop never converges
// AND each pass re-posts, re-mails, or re-files.
type repeatCallDetector struct {
	lastSig string
	streak  int
}

// check evaluates a batch of tool calls and returns the recommended action.
// It resets the streak whenever the batch signature changes.
func (d *repeatCallDetector) check(calls []*provider.ToolCallRequest) repeatAction {
	sig := batchSignature(calls)
	if sig == d.lastSig {
		d.streak++
	} else {
		d.lastSig = sig
		d.streak = 1
	}

	switch {
	case d.streak >= repeatStopThreshold:
		return repeatStop
	case d.streak >= repeatWarnThreshold:
		return repeatWarn
	default:
		return repeatNone
	}
}

// batchSignature produces a deterministic hash for a set of tool calls
// based on their names and inputs. The calls are sorted by name+input
// so that ordering doesn't affect the signature.
func batchSignature(calls []*provider.ToolCallRequest) string {
	parts := make([]string, len(calls))
	for i, c := range calls {
		parts[i] = c.Name + ":" + string(c.Input)
	}
	sort.Strings(parts)
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%x", h)
}
