package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

const (
	maxKnowledgeSnippets = 3
	maxStructuredRows    = 5
)

// SearchCache memoizes knowledge-search output per query.
type SearchCache interface {
	Get(query string) (string, bool)
	Set(query, output string)
}

// RistrettoCache backs SearchCache with an admission-controlled in-process
// cache so repeated searches skip the retrieval collaborator.
type RistrettoCache struct {
	cache *ristretto.Cache
}

func NewRistrettoCache() (*RistrettoCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}
	return &RistrettoCache{cache: cache}, nil
}

func (c *RistrettoCache) Get(query string) (string, bool) {
	value, ok := c.cache.Get(query)
	if !ok {
		return "", false
	}
	output, ok := value.(string)
	return output, ok
}

func (c *RistrettoCache) Set(query, output string) {
	c.cache.Set(query, output, int64(len(output)))
	c.cache.Wait()
}

func (c *RistrettoCache) Close() {
	c.cache.Close()
}

// searchKnowledge runs a similarity search and joins the top snippets. A
// missing collaborator or a failed search degrades to explanatory text.
func (g *Gateway) searchKnowledge(ctx context.Context, query string) string {
	if g.retriever == nil {
		return "Marketing knowledge search not available"
	}

	if g.cache != nil {
		if output, ok := g.cache.Get(query); ok {
			return output
		}
	}

	snippets, err := g.retriever.Search(ctx, query)
	if err != nil {
		log.Warn().Err(err).Msg("knowledge search failed")
		return fmt.Sprintf("Knowledge search error: %v", err)
	}
	if len(snippets) == 0 {
		return "No relevant marketing information found"
	}

	if len(snippets) > maxKnowledgeSnippets {
		snippets = snippets[:maxKnowledgeSnippets]
	}
	output := strings.Join(snippets, "\n\n")

	if g.cache != nil {
		g.cache.Set(query, output)
	}
	return output
}

// queryStructured translates the query into a structured form, executes it,
// and renders the generated query with its top rows.
func (g *Gateway) queryStructured(ctx context.Context, query string) string {
	if g.querier == nil {
		return "Structured marketing knowledge not available"
	}

	generated, rows, err := g.querier.Query(ctx, query, "marketing")
	if err != nil {
		log.Warn().Err(err).Msg("structured query failed")
		return fmt.Sprintf("Structured query error: %v", err)
	}
	if len(rows) == 0 {
		return "No results found in structured knowledge base"
	}

	if len(rows) > maxStructuredRows {
		rows = rows[:maxStructuredRows]
	}
	return fmt.Sprintf("SPARQL Query: %s\n\nResults:\n%s", generated, strings.Join(rows, "\n"))
}
