package rag

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
)

const (
	defaultCollection = "marketing_knowledge"
	defaultTopK       = 3

	hashEmbeddingDim = 128
)

// Document is one entry in the marketing knowledge base.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Searcher answers similarity queries against an embedded vector store.
// It is safe for concurrent use once seeded.
type Searcher struct {
	db   *chromem.DB
	col  *chromem.Collection
	topK int

	mu    sync.RWMutex
	count int
}

// SearcherOption customizes a Searcher.
type SearcherOption func(*searcherSettings)

type searcherSettings struct {
	topK      int
	embedding chromem.EmbeddingFunc
}

func WithTopK(k int) SearcherOption {
	return func(s *searcherSettings) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithEmbedding swaps the embedding function, e.g. for a hosted model.
func WithEmbedding(fn chromem.EmbeddingFunc) SearcherOption {
	return func(s *searcherSettings) {
		if fn != nil {
			s.embedding = fn
		}
	}
}

func NewSearcher(opts ...SearcherOption) (*Searcher, error) {
	settings := searcherSettings{
		topK:      defaultTopK,
		embedding: HashEmbedding(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	db := chromem.NewDB()
	col, err := db.CreateCollection(defaultCollection, nil, settings.embedding)
	if err != nil {
		return nil, fmt.Errorf("create knowledge collection: %w", err)
	}

	return &Searcher{
		db:   db,
		col:  col,
		topK: settings.topK,
	}, nil
}

// Seed loads documents into the knowledge base.
func (s *Searcher) Seed(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		id := doc.ID
		if id == "" {
			id = fmt.Sprintf("doc-%d", s.Count()+1)
		}
		err := s.col.AddDocument(ctx, chromem.Document{
			ID:       id,
			Content:  doc.Content,
			Metadata: doc.Metadata,
		})
		if err != nil {
			return fmt.Errorf("seed document %s: %w", id, err)
		}
		s.mu.Lock()
		s.count++
		s.mu.Unlock()
	}
	return nil
}

func (s *Searcher) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Search returns up to topK snippet contents ranked by similarity. An empty
// knowledge base yields an empty result, not an error.
func (s *Searcher) Search(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	// nResults must not exceed the collection size.
	n := s.topK
	if count := s.Count(); count < n {
		n = count
	}
	if n == 0 {
		return nil, nil
	}

	results, err := s.col.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("knowledge query: %w", err)
	}

	snippets := make([]string, 0, len(results))
	for _, result := range results {
		snippets = append(snippets, result.Content)
	}
	log.Debug().Int("results", len(snippets)).Msg("knowledge search complete")
	return snippets, nil
}

// HashEmbedding is a deterministic bag-of-words feature-hashing embedder.
// It needs no network access and gives stable, reproducible rankings, which
// keeps retrieval usable offline and in tests.
func HashEmbedding() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vec := make([]float32, hashEmbeddingDim)
		for _, word := range tokenize(text) {
			h := fnv.New32a()
			h.Write([]byte(word))
			vec[h.Sum32()%hashEmbeddingDim]++
		}

		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		if norm == 0 {
			vec[0] = 1
			return vec, nil
		}
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
		return vec, nil
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}

// DefaultKnowledge is the built-in marketing corpus used when no external
// knowledge base is configured.
func DefaultKnowledge() []Document {
	return []Document{
		{
			ID:       "kb-platform-policies",
			Content:  "Mainstream ad platforms including Facebook, Instagram, and Google Ads prohibit cannabis advertising. Compliant campaigns on these channels rely on wellness positioning, educational content, and lifestyle branding without any cannabis, CBD, or hemp references.",
			Metadata: map[string]string{"topic": "compliance"},
		},
		{
			ID:       "kb-marketplaces",
			Content:  "Weedmaps and Leafly allow licensed cannabis operators to advertise directly. Best results come from high quality product photography, detailed strain descriptions, customer reviews, and regularly refreshed deals.",
			Metadata: map[string]string{"topic": "platforms"},
		},
		{
			ID:       "kb-wellness-angle",
			Content:  "The wellness angle reframes cannabis marketing around plant-based wellness, natural remedies, relaxation, and balance. Case studies show wellness-framed campaigns passing review on restricted platforms while building retargetable audiences.",
			Metadata: map[string]string{"topic": "strategy"},
		},
		{
			ID:       "kb-content-marketing",
			Content:  "Educational content marketing such as strain guides, dosage education, and terpene explainers builds organic reach and positions dispensaries as trusted experts without triggering paid-advertising restrictions.",
			Metadata: map[string]string{"topic": "strategy"},
		},
		{
			ID:       "kb-automation",
			Content:  "Marketing automation workflows handle content approval routing, compliance pre-checks, multi-platform scheduling, and campaign performance monitoring, reducing manual review effort for regulated-category marketers.",
			Metadata: map[string]string{"topic": "automation"},
		},
		{
			ID:       "kb-demographics",
			Content:  "Cannabis consumers skew 25-44 with a near-even gender split and mid-range household incomes. Engagement peaks on weekday evenings, and educational or behind-the-scenes content outperforms direct promotion.",
			Metadata: map[string]string{"topic": "audience"},
		},
	}
}
