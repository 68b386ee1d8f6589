package prompt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
)

var (
	//go:embed template/strategist.txt
	strategistRaw string

	//go:embed template/baseline.json
	baselineRaw []byte
)

// Strategist returns the system prompt for the marketing strategist.
// The embed is compile-time, so this is safe to call concurrently.
func Strategist() string {
	return strings.TrimSpace(strategistRaw)
}

// BaselineQuestions returns the embedded regression question set.
func BaselineQuestions() ([]contractx.BaselineQuestion, error) {
	var questions []contractx.BaselineQuestion
	if err := json.Unmarshal(baselineRaw, &questions); err != nil {
		return nil, fmt.Errorf("decode baseline questions: %w", err)
	}
	return questions, nil
}
