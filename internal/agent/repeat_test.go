package agent

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/meetingctl/meetingctl/internal/provider"
)

func makeCalls(names ...string) []*provider.ToolCallRequest {
	calls := make([]*provider.ToolCallRequest, len(names))
	for i, n := range names {
		calls[i] = &provider.ToolCallRequest{
			ID:    fmt.Sprintf("call_%d", i),
			Name:  n,
			Input: json.RawMessage(`{}`),
		}
	}
	return calls
}

func makeCallWithInput(name, input string) []*provider.ToolCallRequest {
	return []*provider.ToolCallRequest{{
		ID:    "call_0",
		Name:  name,
		Input: json.RawMessage(input),
	}}
}

func TestRepeatDetectorWarnsAtThreshold(t *testing.T) {
	d := &repeatCallDetector{}
	calls := makeCalls("post_slack")

	if got := d.check(calls); got != repeatNone {
		t.Fatalf("streak 1: got %v, want repeatNone", got)
	}
	if got := d.check(calls); got != repeatNone {
		t.Fatalf("streak 2: got %v, want repeatNone", got)
	}
	if got := d.check(calls); got != repeatWarn {
		t.Fatalf("streak 3: got %v, want repeatWarn", got)
	}
	if got := d.check(calls); got != repeatWarn {
		t.Fatalf("streak 4: got %v, want repeatWarn", got)
	}
	if got := d.check(calls); got != repeatStop {
		t.Fatalf("streak 5: got %v, want repeatStop", got)
	}
}

func TestRepeatDetectorResetsOnDifferentCalls(t *testing.T) {
	d := &repeatCallDetector{}
	a := makeCalls("create_ticket")
	b := makeCalls("send_email")

	d.check(a)
	d.check(a)
	if got := d.check(b); got != repeatNone {
		t.Fatalf("after switching calls: got %v, want repeatNone", got)
	}
	d.check(b)
	if got := d.check(b); got != repeatWarn {
		t.Fatalf("new streak 3: got %v, want repeatWarn", got)
	}
}

func TestRepeatDetectorDistinguishesInputs(t *testing.T) {
	d := &repeatCallDetector{}
	a := makeCallWithInput("create_ticket", `{"x":1}`)
	b := makeCallWithInput("create_ticket", `{"x":2}`)

	d.check(a)
	d.check(a)
	if got := d.check(b); got != repeatNone {
		t.Fatalf("same tool different input: got %v, want repeatNone", got)
	}
}

func TestBatchSignatureOrderInsensitive(t *testing.T) {
	a := makeCalls("analyze_actions", "process_url")
	b := makeCalls("process_url", "analyze_actions")

	if batchSignature(a) != batchSignature(b) {
		t.Fatal("signature should not depend on call order")
	}
}

func TestBatchSignatureDiffersByName(t *testing.T) {
	a := makeCalls("post_slack")
	b := makeCalls("send_email")

	if batchSignature(a) == batchSignature(b) {
		t.Fatal("different tools should produce different signatures")
	}
}
