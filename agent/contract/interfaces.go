package contract

import "context"

// Reasoner is the capability boundary to the external reasoning service:
// one operation mapping (prompt, history, tool catalog) to (text, trace).
// Concrete backends are swappable and mockable in tests.
type Reasoner interface {
	Respond(ctx context.Context, req ReasonerRequest) (ReasonerResponse, error)
}

// ToolGateway executes a named tool adapter. Implementations never return
// an error past this boundary; failures become diagnostic Output text.
type ToolGateway interface {
	Execute(ctx context.Context, tool string, input string) ToolResult
}

// Retriever is the similarity-search collaborator boundary.
type Retriever interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// StructuredQuerier is the structured-knowledge collaborator boundary. It
// turns a natural-language query plus domain tag into a structured query,
// executes it, and returns the generated query alongside ordered bindings.
type StructuredQuerier interface {
	Query(ctx context.Context, query string, domain string) (string, []string, error)
}
