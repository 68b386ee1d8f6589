package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
)

const (
	ToolComplianceCheck   = "platform_compliance_check"
	ToolCreativeStrategy  = "creative_strategy_generator"
	ToolMarketIntel       = "market_intelligence"
	ToolWorkflowSimulator = "n8n_workflow_simulator"
	ToolKnowledgeSearch   = "marketing_knowledge_search"
	ToolStructuredQuery   = "structured_marketing_query"
)

// Catalog lists every adapter the gateway can dispatch, in advertisement
// order. Retrieval tools are always advertised; when their collaborator is
// absent the adapter degrades to a diagnostic message instead.
func Catalog() []contractx.ToolInfo {
	return []contractx.ToolInfo{
		{
			Name: ToolComplianceCheck,
			Desc: "Check marketing content compliance for specific platforms. Input format: 'platform:content'.",
			Params: map[string]contractx.ToolParam{
				"input": {Type: "string", Desc: "Platform name and content joined by a colon", Required: true},
			},
		},
		{
			Name: ToolCreativeStrategy,
			Desc: "Generate compliant creative strategies for cannabis marketing from a campaign brief.",
			Params: map[string]contractx.ToolParam{
				"input": {Type: "string", Desc: "Campaign brief", Required: true},
			},
		},
		{
			Name: ToolMarketIntel,
			Desc: "Analyze market data, CPC estimates, and audience insights.",
			Params: map[string]contractx.ToolParam{
				"input": {Type: "string", Desc: "Market question", Required: true},
			},
		},
		{
			Name: ToolWorkflowSimulator,
			Desc: "Simulate N8N marketing automation workflows.",
			Params: map[string]contractx.ToolParam{
				"input": {Type: "string", Desc: "Workflow description", Required: true},
			},
		},
		{
			Name: ToolKnowledgeSearch,
			Desc: "Search marketing knowledge base for strategies and case studies.",
			Params: map[string]contractx.ToolParam{
				"input": {Type: "string", Desc: "Search query", Required: true},
			},
		},
		{
			Name: ToolStructuredQuery,
			Desc: "Query structured marketing knowledge using natural language.",
			Params: map[string]contractx.ToolParam{
				"input": {Type: "string", Desc: "Natural language query", Required: true},
			},
		},
	}
}

// GatewayOption customizes a Gateway.
type GatewayOption func(*Gateway)

// WithRetriever wires the similarity-search collaborator.
func WithRetriever(r contractx.Retriever) GatewayOption {
	return func(g *Gateway) { g.retriever = r }
}

// WithStructuredQuerier wires the structured-knowledge collaborator.
func WithStructuredQuerier(q contractx.StructuredQuerier) GatewayOption {
	return func(g *Gateway) { g.querier = q }
}

// WithSearchCache wires a cache in front of knowledge searches.
func WithSearchCache(c SearchCache) GatewayOption {
	return func(g *Gateway) { g.cache = c }
}

// Gateway dispatches tool invocations to static adapters and retrieval
// collaborators. Execute never returns an error: every failure mode becomes
// diagnostic text in the result so a single misbehaving tool cannot abort a
// reasoning run.
type Gateway struct {
	retriever contractx.Retriever
	querier   contractx.StructuredQuerier
	cache     SearchCache
}

func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func (g *Gateway) Execute(ctx context.Context, tool string, input string) contractx.ToolResult {
	output := g.dispatch(ctx, strings.TrimSpace(tool), input)
	return contractx.ToolResult{Tool: tool, Output: output}
}

func (g *Gateway) dispatch(ctx context.Context, tool, input string) string {
	switch tool {
	case ToolComplianceCheck:
		return checkPlatformCompliance(input)
	case ToolCreativeStrategy:
		return generateCreativeStrategy(input)
	case ToolMarketIntel:
		return analyzeMarket(input)
	case ToolWorkflowSimulator:
		return simulateWorkflow(input)
	case ToolKnowledgeSearch:
		return g.searchKnowledge(ctx, input)
	case ToolStructuredQuery:
		return g.queryStructured(ctx, input)
	default:
		log.Warn().Str("tool", tool).Msg("unknown tool requested")
		return fmt.Sprintf("Tool '%s' not recognized. Available: %s", tool, strings.Join(toolNames(), ", "))
	}
}

func toolNames() []string {
	infos := Catalog()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}
