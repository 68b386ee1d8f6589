package baseline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
)

const (
	// ReservedUserID is the identity baseline runs borrow for their
	// conversations. Its memory is wiped after every run.
	ReservedUserID = "baseline_test"

	// MaxQuestionsPerRun caps how many questions a single run processes.
	MaxQuestionsPerRun = 5
)

var ErrNoQuestions = errors.New("no baseline questions available")

// QueryProcessor is the slice of the orchestrator the runner needs.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, userID, query string, queryContext map[string]any) contractx.QueryResult
	ClearMemory(ctx context.Context, userID string) error
}

// Runner executes the fixed regression question set sequentially and scores
// each response heuristically.
type Runner struct {
	processor QueryProcessor
	scorer    *Scorer
	questions []contractx.BaselineQuestion

	now func() time.Time
}

func NewRunner(processor QueryProcessor, scorer *Scorer, questions []contractx.BaselineQuestion) (*Runner, error) {
	if processor == nil {
		return nil, errors.New("query processor is required")
	}
	if scorer == nil {
		return nil, errors.New("scorer is required")
	}
	return &Runner{
		processor: processor,
		scorer:    scorer,
		questions: questions,
		now:       time.Now,
	}, nil
}

// Run processes up to MaxQuestionsPerRun questions, one at a time, under
// the reserved identity. A non-empty questionID narrows the run to that
// single question; an unmatched id yields an empty report, not an error.
// The reserved identity's memory is cleared before the report is returned,
// even when individual questions fail.
func (r *Runner) Run(ctx context.Context, questionID string) (contractx.BaselineReport, error) {
	if len(r.questions) == 0 {
		return contractx.BaselineReport{}, ErrNoQuestions
	}

	questions := r.selectQuestions(questionID)
	if len(questions) == 0 {
		return contractx.BaselineReport{Timestamp: r.now().UTC()}, nil
	}

	results := make([]contractx.BaselineResult, 0, len(questions))
	for _, question := range questions {
		results = append(results, r.runOne(ctx, question))
	}

	if err := r.processor.ClearMemory(ctx, ReservedUserID); err != nil {
		log.Warn().Err(err).Msg("failed to clear baseline memory")
	}

	passed := 0
	var confidenceSum float64
	for _, result := range results {
		if result.Passed {
			passed++
		}
		confidenceSum += result.Confidence
	}

	return contractx.BaselineReport{
		TotalQuestions:    len(results),
		Passed:            passed,
		AverageConfidence: confidenceSum / float64(len(results)),
		Results:           results,
		Timestamp:         r.now().UTC(),
	}, nil
}

func (r *Runner) selectQuestions(questionID string) []contractx.BaselineQuestion {
	questions := r.questions
	if id := strings.TrimSpace(questionID); id != "" {
		filtered := make([]contractx.BaselineQuestion, 0, 1)
		for _, q := range questions {
			if q.ID == id {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	if len(questions) > MaxQuestionsPerRun {
		questions = questions[:MaxQuestionsPerRun]
	}
	return questions
}

func (r *Runner) runOne(ctx context.Context, question contractx.BaselineQuestion) contractx.BaselineResult {
	result := contractx.BaselineResult{
		QuestionID: question.ID,
		Question:   question.Question,
		Expected:   question.ExpectedAnswer,
	}

	outcome := r.processor.ProcessQuery(ctx, ReservedUserID, question.Question, map[string]any{"test_mode": true})
	if outcome.Err != "" {
		result.Err = outcome.Err
		result.Evaluation = contractx.BaselineEvaluation{Err: outcome.Err}
		return result
	}

	evaluation := r.scorer.Evaluate(question, outcome.Response)
	result.Actual = outcome.Response
	result.Passed = evaluation.Passed
	result.Confidence = evaluation.Confidence
	result.Evaluation = evaluation
	return result
}
