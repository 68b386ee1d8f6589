package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
	memoryx "github.com/greenmark-ai/greenmark/agent/memory"
)

const (
	// Confidence reported for a completed reasoning run. A calibrated
	// estimate would need feedback data the system does not collect yet.
	successConfidence = 0.85

	defaultMaxConcurrent = 8
)

var (
	ErrInvalidQuery = errors.New("query is empty")
)

// Config tunes the orchestrator.
type Config struct {
	MaxConcurrent int `envconfig:"MAX_CONCURRENT" split_words:"true" default:"8"`
}

// Exchange is one user message paired with the agent's reply.
type Exchange struct {
	UserMessage   string    `json:"user_message"`
	AgentResponse string    `json:"agent_response"`
	Timestamp     time.Time `json:"timestamp"`
}

// Orchestrator coordinates one query through memory, reasoning, and
// persistence. ProcessQuery never returns an error: failures are folded
// into the result so callers always get a well-formed outcome.
type Orchestrator struct {
	reasoner contractx.Reasoner
	memory   *memoryx.Manager
	prompt   string
	tools    []contractx.ToolInfo

	sem chan struct{}

	now   func() time.Time
	newID func() string
}

func New(reasoner contractx.Reasoner, memory *memoryx.Manager, prompt string, tools []contractx.ToolInfo, cfg Config) (*Orchestrator, error) {
	if reasoner == nil {
		return nil, errors.New("reasoner is required")
	}
	if memory == nil {
		return nil, errors.New("memory manager is required")
	}

	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	return &Orchestrator{
		reasoner: reasoner,
		memory:   memory,
		prompt:   prompt,
		tools:    tools,
		sem:      make(chan struct{}, maxConcurrent),
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// ProcessQuery runs one conversational turn for the user. Context data, if
// present, is serialized and prepended to the query handed to the reasoner;
// the stored history keeps the user's original wording. On failure the
// result carries an apology, a zero confidence, and the error text, and the
// history is left untouched.
func (o *Orchestrator) ProcessQuery(ctx context.Context, userID, query string, queryContext map[string]any) contractx.QueryResult {
	result := contractx.QueryResult{
		ID:        o.newID(),
		UserID:    userID,
		Timestamp: o.now().UTC(),
	}

	if strings.TrimSpace(userID) == "" {
		return o.fail(result, memoryx.ErrInvalidUser)
	}
	if strings.TrimSpace(query) == "" {
		return o.fail(result, ErrInvalidQuery)
	}

	select {
	case o.sem <- struct{}{}:
		defer func() { <-o.sem }()
	case <-ctx.Done():
		return o.fail(result, ctx.Err())
	}

	history, err := o.memory.ReadHistory(ctx, userID, o.memory.MaxPairs())
	if err != nil {
		return o.fail(result, err)
	}

	augmented, err := augmentQuery(query, queryContext)
	if err != nil {
		return o.fail(result, err)
	}

	history = append(history, contractx.Turn{Role: contractx.RoleUser, Text: augmented})

	resp, err := o.reasoner.Respond(ctx, contractx.ReasonerRequest{
		Prompt:  o.prompt,
		History: history,
		Tools:   o.tools,
	})
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("query processing failed")
		return o.fail(result, err)
	}

	if err := o.memory.AppendExchange(ctx, userID, query, resp.Text); err != nil {
		return o.fail(result, err)
	}

	result.Response = resp.Text
	result.Trace = resp.Trace
	result.Confidence = successConfidence
	return result
}

func (o *Orchestrator) fail(result contractx.QueryResult, err error) contractx.QueryResult {
	result.Response = fmt.Sprintf("I encountered an error processing your marketing query: %v", err)
	result.Err = err.Error()
	result.Confidence = 0
	return result
}

// GetHistory returns the most recent exchanges for the user, oldest first.
// An unknown identity yields an empty slice.
func (o *Orchestrator) GetHistory(ctx context.Context, userID string, limit int) ([]Exchange, error) {
	turns, err := o.memory.ReadHistory(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	exchanges := make([]Exchange, 0, len(turns)/2)
	for i := 0; i+1 < len(turns); i += 2 {
		exchanges = append(exchanges, Exchange{
			UserMessage:   turns[i].Text,
			AgentResponse: turns[i+1].Text,
			Timestamp:     o.now().UTC(),
		})
	}
	return exchanges, nil
}

// ClearMemory drops the user's conversation history.
func (o *Orchestrator) ClearMemory(ctx context.Context, userID string) error {
	return o.memory.Clear(ctx, userID)
}

func augmentQuery(query string, queryContext map[string]any) (string, error) {
	if len(queryContext) == 0 {
		return query, nil
	}
	raw, err := json.Marshal(queryContext)
	if err != nil {
		return "", fmt.Errorf("marshal query context: %w", err)
	}
	return fmt.Sprintf("Context: %s\n\nQuery: %s", raw, query), nil
}
