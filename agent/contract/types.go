package contract

import "time"

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is a single immutable entry in a conversation history.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ToolParam describes one parameter of a tool's input contract.
type ToolParam struct {
	Type     string `json:"type"`
	Desc     string `json:"desc"`
	Required bool   `json:"required"`
}

// ToolInfo is the catalog entry advertised to the reasoning service.
type ToolInfo struct {
	Name   string               `json:"name"`
	Desc   string               `json:"desc"`
	Params map[string]ToolParam `json:"params,omitempty"`
}

// ToolResult is what a tool adapter hands back to its caller. Adapters are
// crash-proof: internal failures surface as diagnostic text in Output,
// never as an error.
type ToolResult struct {
	Tool   string `json:"tool"`
	Output string `json:"output"`
}

// ToolInvocation records one tool call made during a reasoning run.
type ToolInvocation struct {
	Tool   string `json:"tool"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// ReasonerRequest is the full context handed to the reasoning service.
type ReasonerRequest struct {
	Prompt  string     `json:"prompt"`
	History []Turn     `json:"history"`
	Tools   []ToolInfo `json:"tools,omitempty"`
}

// ReasonerResponse is the structured outcome of one reasoning run.
type ReasonerResponse struct {
	Text  string           `json:"text"`
	Trace []ToolInvocation `json:"trace,omitempty"`
}

// QueryResult is the caller-facing outcome of ProcessQuery. A failure is
// signalled by a populated Err and Confidence == 0; the struct itself is
// always well formed.
type QueryResult struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Response   string           `json:"response"`
	Trace      []ToolInvocation `json:"trace,omitempty"`
	Confidence float64          `json:"confidence"`
	Timestamp  time.Time        `json:"timestamp"`
	Err        string           `json:"error,omitempty"`
}

// BaselineQuestion is one fixed regression prompt. ExpectedAnswer is
// advisory only and never scored against.
type BaselineQuestion struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	ExpectedAnswer string   `json:"expected_answer,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
}

// BaselineEvaluation is the heuristic score of one baseline response.
type BaselineEvaluation struct {
	Passed          bool    `json:"passed"`
	Confidence      float64 `json:"confidence"`
	KeywordMatches  int     `json:"keyword_matches"`
	TotalKeywords   int     `json:"total_keywords"`
	DomainRelevance float64 `json:"domain_relevance"`
	ResponseLength  int     `json:"response_length"`
	Err             string  `json:"error,omitempty"`
}

// BaselineResult pairs a question with its response and evaluation.
type BaselineResult struct {
	QuestionID string             `json:"question_id"`
	Question   string             `json:"question"`
	Expected   string             `json:"expected,omitempty"`
	Actual     string             `json:"actual,omitempty"`
	Passed     bool               `json:"passed"`
	Confidence float64            `json:"confidence"`
	Evaluation BaselineEvaluation `json:"evaluation"`
	Err        string             `json:"error,omitempty"`
}

// BaselineReport aggregates one baseline run.
type BaselineReport struct {
	TotalQuestions    int              `json:"total_questions"`
	Passed            int              `json:"passed"`
	AverageConfidence float64          `json:"average_confidence"`
	Results           []BaselineResult `json:"results"`
	Timestamp         time.Time        `json:"timestamp"`
}
