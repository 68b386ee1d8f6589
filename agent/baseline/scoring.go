package baseline

import (
	"errors"
	"fmt"
	"strings"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
)

// Weight names recognized by the scorer.
const (
	WeightKeyword = "keyword"
	WeightDomain  = "domain"
	WeightLength  = "length"
)

// ScoringConfig drives the heuristic evaluation. Weights are normalized
// over the three named components; responses at or above PassThreshold pass.
type ScoringConfig struct {
	Weights       map[string]float64
	PassThreshold float64
	DomainTerms   []string
	LengthTarget  int
}

// DefaultScoringConfig weights keyword and domain coverage equally, with
// length as a minor component.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: map[string]float64{
			WeightKeyword: 0.4,
			WeightDomain:  0.4,
			WeightLength:  0.2,
		},
		PassThreshold: 0.6,
		DomainTerms:   []string{"platform", "compliance", "strategy", "campaign", "audience", "creative"},
		LengthTarget:  200,
	}
}

// Scorer evaluates baseline responses against expected keywords and the
// marketing vocabulary.
type Scorer struct {
	cfg ScoringConfig
}

func NewScorer(cfg ScoringConfig) (*Scorer, error) {
	if len(cfg.Weights) == 0 {
		return nil, errors.New("scoring weights are required")
	}
	var total float64
	for name, w := range cfg.Weights {
		switch name {
		case WeightKeyword, WeightDomain, WeightLength:
		default:
			return nil, fmt.Errorf("unknown scoring weight %q", name)
		}
		if w < 0 {
			return nil, fmt.Errorf("scoring weight %q is negative", name)
		}
		total += w
	}
	if total <= 0 {
		return nil, errors.New("scoring weights sum to zero")
	}
	if cfg.PassThreshold <= 0 || cfg.PassThreshold > 1 {
		return nil, fmt.Errorf("pass threshold %v out of range (0, 1]", cfg.PassThreshold)
	}
	if len(cfg.DomainTerms) == 0 {
		return nil, errors.New("domain terms are required")
	}
	if cfg.LengthTarget <= 0 {
		return nil, errors.New("length target must be positive")
	}
	return &Scorer{cfg: cfg}, nil
}

// Evaluate scores one response. A question with no keywords contributes a
// neutral 0.5 keyword score instead of skewing the result either way.
func (s *Scorer) Evaluate(question contractx.BaselineQuestion, response string) contractx.BaselineEvaluation {
	responseLower := strings.ToLower(response)

	keywordMatches := 0
	for _, keyword := range question.Keywords {
		if strings.Contains(responseLower, strings.ToLower(keyword)) {
			keywordMatches++
		}
	}
	keywordScore := 0.5
	if len(question.Keywords) > 0 {
		keywordScore = float64(keywordMatches) / float64(len(question.Keywords))
	}

	domainMatches := 0
	for _, term := range s.cfg.DomainTerms {
		if strings.Contains(responseLower, term) {
			domainMatches++
		}
	}
	domainScore := float64(domainMatches) / float64(len(s.cfg.DomainTerms))

	lengthScore := float64(len(response)) / float64(s.cfg.LengthTarget)
	if lengthScore > 1 {
		lengthScore = 1
	}

	overall := keywordScore*s.cfg.Weights[WeightKeyword] +
		domainScore*s.cfg.Weights[WeightDomain] +
		lengthScore*s.cfg.Weights[WeightLength]

	return contractx.BaselineEvaluation{
		Passed:          overall >= s.cfg.PassThreshold,
		Confidence:      overall,
		KeywordMatches:  keywordMatches,
		TotalKeywords:   len(question.Keywords),
		DomainRelevance: domainScore,
		ResponseLength:  len(response),
	}
}
