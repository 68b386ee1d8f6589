package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	defaultSPARQLTimeout = 15 * time.Second
	maxSPARQLBodyBytes   = 4 << 20
)

// SPARQLConfig configures the structured-knowledge endpoint.
type SPARQLConfig struct {
	Endpoint string        `envconfig:"ENDPOINT" split_words:"true" required:"true"`
	Timeout  time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// SPARQLClient turns natural-language questions into SPARQL, runs them
// against a SPARQL 1.1 protocol endpoint, and flattens the bindings.
type SPARQLClient struct {
	endpoint   string
	httpClient *http.Client
}

// SPARQLOption customizes a SPARQLClient.
type SPARQLOption func(*SPARQLClient)

func WithSPARQLHTTPClient(client *http.Client) SPARQLOption {
	return func(c *SPARQLClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func NewSPARQLClient(cfg SPARQLConfig, opts ...SPARQLOption) (*SPARQLClient, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("sparql endpoint is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid sparql endpoint: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSPARQLTimeout
	}

	client := &SPARQLClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Query generates a SPARQL query from the natural-language question, runs
// it, and returns the generated query text alongside flattened result rows.
func (c *SPARQLClient) Query(ctx context.Context, query string, domain string) (string, []string, error) {
	if strings.TrimSpace(query) == "" {
		return "", nil, errors.New("query is empty")
	}

	sparql := GenerateSPARQL(query, domain)

	rows, err := c.execute(ctx, sparql)
	if err != nil {
		return sparql, nil, err
	}
	return sparql, rows, nil
}

// GenerateSPARQL builds a keyword-filtered SELECT over the domain graph.
// Every meaningful term from the question becomes a case-insensitive FILTER
// alternative over the object labels.
func GenerateSPARQL(query string, domain string) string {
	graph := strings.TrimSpace(domain)
	if graph == "" {
		graph = "marketing"
	}

	terms := keywordTerms(query)

	var b strings.Builder
	fmt.Fprintf(&b, "PREFIX %s: <http://greenmark.ai/ontology/%s#>\n", graph, graph)
	b.WriteString("SELECT ?subject ?predicate ?object\n")
	b.WriteString("WHERE {\n")
	b.WriteString("  ?subject ?predicate ?object .\n")
	if len(terms) > 0 {
		filters := make([]string, 0, len(terms))
		for _, term := range terms {
			filters = append(filters, fmt.Sprintf("CONTAINS(LCASE(STR(?object)), %q)", term))
		}
		fmt.Fprintf(&b, "  FILTER(%s)\n", strings.Join(filters, " || "))
	}
	b.WriteString("}\nLIMIT 25")
	return b.String()
}

// Stop words removed before keyword extraction.
var sparqlStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "can": {}, "do": {}, "does": {},
	"for": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "my": {},
	"of": {}, "on": {}, "or": {}, "our": {}, "the": {}, "to": {}, "we": {},
	"what": {}, "which": {}, "with": {},
}

func keywordTerms(query string) []string {
	seen := make(map[string]struct{})
	for _, word := range tokenize(query) {
		if len(word) < 3 {
			continue
		}
		if _, stop := sparqlStopWords[word]; stop {
			continue
		}
		seen[word] = struct{}{}
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

type sparqlResults struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

func (c *SPARQLClient) execute(ctx context.Context, sparql string) ([]string, error) {
	form := url.Values{"query": {sparql}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build sparql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute sparql request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxSPARQLBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read sparql response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("sparql http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed sparqlResults
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode sparql response: %w", err)
	}

	rows := make([]string, 0, len(parsed.Results.Bindings))
	for _, binding := range parsed.Results.Bindings {
		parts := make([]string, 0, len(parsed.Head.Vars))
		for _, v := range parsed.Head.Vars {
			cell, ok := binding[v]
			if !ok {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%s", v, cell.Value))
		}
		if len(parts) > 0 {
			rows = append(rows, strings.Join(parts, " "))
		}
	}
	return rows, nil
}
