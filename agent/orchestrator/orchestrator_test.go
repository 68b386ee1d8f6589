package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
	memoryx "github.com/greenmark-ai/greenmark/agent/memory"
)

type fakeReasoner struct {
	mu       sync.Mutex
	requests []contractx.ReasonerRequest
	resp     contractx.ReasonerResponse
	err      error
}

func (f *fakeReasoner) Respond(ctx context.Context, req contractx.ReasonerRequest) (contractx.ReasonerResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return contractx.ReasonerResponse{}, f.err
	}
	return f.resp, nil
}

func newTestOrchestrator(t *testing.T, r contractx.Reasoner) (*Orchestrator, *memoryx.Manager) {
	t.Helper()

	mgr := memoryx.NewManager(memoryx.NewInMemoryStore(), memoryx.DefaultMaxPairs)
	o, err := New(r, mgr, "strategist prompt", nil, Config{MaxConcurrent: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o, mgr
}

func TestProcessQuerySuccess(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{resp: contractx.ReasonerResponse{
		Text: "Use a wellness angle.",
		Trace: []contractx.ToolInvocation{
			{Tool: "platform_compliance_check", Input: "facebook: cbd", Output: "{}"},
		},
	}}
	o, mgr := newTestOrchestrator(t, reasoner)
	ctx := context.Background()

	result := o.ProcessQuery(ctx, "u1", "How do I advertise CBD on Facebook?", nil)
	if result.Err != "" {
		t.Fatalf("unexpected error: %q", result.Err)
	}
	if result.Response != "Use a wellness angle." {
		t.Fatalf("unexpected response: %q", result.Response)
	}
	if result.Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %v", result.Confidence)
	}
	if result.ID == "" || result.UserID != "u1" || result.Timestamp.IsZero() {
		t.Fatalf("result metadata incomplete: %+v", result)
	}
	if len(result.Trace) != 1 {
		t.Fatalf("expected trace to pass through, got %v", result.Trace)
	}

	turns, err := mgr.ReadHistory(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("ReadHistory() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns persisted, got %d", len(turns))
	}
	if turns[0].Text != "How do I advertise CBD on Facebook?" {
		t.Fatalf("persisted user turn = %q", turns[0].Text)
	}
}

func TestProcessQueryContextAugmentation(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{resp: contractx.ReasonerResponse{Text: "ok"}}
	o, mgr := newTestOrchestrator(t, reasoner)
	ctx := context.Background()

	result := o.ProcessQuery(ctx, "u1", "plan a campaign", map[string]any{"budget": 5000})
	if result.Err != "" {
		t.Fatalf("unexpected error: %q", result.Err)
	}

	reasoner.mu.Lock()
	req := reasoner.requests[0]
	reasoner.mu.Unlock()

	last := req.History[len(req.History)-1]
	if !strings.HasPrefix(last.Text, "Context: ") {
		t.Fatalf("expected augmented query, got %q", last.Text)
	}
	if !strings.Contains(last.Text, `"budget":5000`) {
		t.Fatalf("context JSON missing: %q", last.Text)
	}
	if !strings.HasSuffix(last.Text, "\n\nQuery: plan a campaign") {
		t.Fatalf("query suffix missing: %q", last.Text)
	}

	// The stored history keeps the original wording.
	turns, err := mgr.ReadHistory(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("ReadHistory() error = %v", err)
	}
	if turns[0].Text != "plan a campaign" {
		t.Fatalf("persisted turn must be the original query, got %q", turns[0].Text)
	}
}

func TestProcessQueryIncludesHistory(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{resp: contractx.ReasonerResponse{Text: "reply"}}
	o, _ := newTestOrchestrator(t, reasoner)
	ctx := context.Background()

	o.ProcessQuery(ctx, "u1", "first question", nil)
	o.ProcessQuery(ctx, "u1", "second question", nil)

	reasoner.mu.Lock()
	defer reasoner.mu.Unlock()
	req := reasoner.requests[1]
	if len(req.History) != 3 {
		t.Fatalf("expected 2 prior turns plus the new query, got %d", len(req.History))
	}
	if req.History[0].Text != "first question" || req.History[1].Text != "reply" {
		t.Fatalf("unexpected history: %+v", req.History)
	}
}

func TestProcessQueryFailureLeavesHistoryUntouched(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{resp: contractx.ReasonerResponse{Text: "ok"}}
	o, mgr := newTestOrchestrator(t, reasoner)
	ctx := context.Background()

	o.ProcessQuery(ctx, "u1", "working question", nil)

	reasoner.mu.Lock()
	reasoner.err = errors.New("model unavailable")
	reasoner.mu.Unlock()

	result := o.ProcessQuery(ctx, "u1", "failing question", nil)
	if result.Err == "" {
		t.Fatal("expected populated error")
	}
	if result.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", result.Confidence)
	}
	if !strings.Contains(result.Response, "I encountered an error processing your marketing query") {
		t.Fatalf("expected apology response, got %q", result.Response)
	}
	if !strings.Contains(result.Response, "model unavailable") {
		t.Fatalf("expected cause in response, got %q", result.Response)
	}

	turns, err := mgr.ReadHistory(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("ReadHistory() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("failed query must not touch history, got %d turns", len(turns))
	}
}

func TestProcessQueryValidation(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t, &fakeReasoner{resp: contractx.ReasonerResponse{Text: "ok"}})
	ctx := context.Background()

	if result := o.ProcessQuery(ctx, "", "query", nil); result.Err == "" || result.Confidence != 0 {
		t.Fatalf("expected failure for empty user, got %+v", result)
	}
	if result := o.ProcessQuery(ctx, "u1", "   ", nil); result.Err == "" {
		t.Fatalf("expected failure for empty query, got %+v", result)
	}
}

func TestGetHistoryPairsExchanges(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t, &fakeReasoner{resp: contractx.ReasonerResponse{Text: "answer"}})
	ctx := context.Background()

	o.ProcessQuery(ctx, "u1", "question one", nil)
	o.ProcessQuery(ctx, "u1", "question two", nil)

	exchanges, err := o.GetHistory(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(exchanges) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(exchanges))
	}
	if exchanges[0].UserMessage != "question one" || exchanges[0].AgentResponse != "answer" {
		t.Fatalf("unexpected exchange: %+v", exchanges[0])
	}
}

func TestClearMemory(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t, &fakeReasoner{resp: contractx.ReasonerResponse{Text: "answer"}})
	ctx := context.Background()

	o.ProcessQuery(ctx, "u1", "question", nil)
	if err := o.ClearMemory(ctx, "u1"); err != nil {
		t.Fatalf("ClearMemory() error = %v", err)
	}

	exchanges, err := o.GetHistory(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(exchanges) != 0 {
		t.Fatalf("expected empty history, got %d exchanges", len(exchanges))
	}
}
