package rag

import (
	"context"
	"strings"
	"testing"
)

func TestSearcherEmptyKnowledgeBase(t *testing.T) {
	t.Parallel()

	s, err := NewSearcher()
	if err != nil {
		t.Fatalf("NewSearcher() error = %v", err)
	}

	snippets, err := s.Search(context.Background(), "cannabis marketing")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(snippets) != 0 {
		t.Fatalf("expected no snippets from empty knowledge base, got %d", len(snippets))
	}
}

func TestSearcherRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	s, err := NewSearcher()
	if err != nil {
		t.Fatalf("NewSearcher() error = %v", err)
	}
	if _, err := s.Search(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearcherReturnsTopK(t *testing.T) {
	t.Parallel()

	s, err := NewSearcher()
	if err != nil {
		t.Fatalf("NewSearcher() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Seed(ctx, DefaultKnowledge()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	snippets, err := s.Search(ctx, "wellness angle for restricted platforms")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(snippets) != defaultTopK {
		t.Fatalf("expected %d snippets, got %d", defaultTopK, len(snippets))
	}
}

func TestSearcherClampsToCollectionSize(t *testing.T) {
	t.Parallel()

	s, err := NewSearcher(WithTopK(5))
	if err != nil {
		t.Fatalf("NewSearcher() error = %v", err)
	}
	ctx := context.Background()

	docs := []Document{
		{ID: "d1", Content: "weedmaps listing optimization"},
		{ID: "d2", Content: "leafly strain reviews"},
	}
	if err := s.Seed(ctx, docs); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	snippets, err := s.Search(ctx, "weedmaps")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets, got %d", len(snippets))
	}
}

func TestSearcherRanksRelevantFirst(t *testing.T) {
	t.Parallel()

	s, err := NewSearcher(WithTopK(1))
	if err != nil {
		t.Fatalf("NewSearcher() error = %v", err)
	}
	ctx := context.Background()

	docs := []Document{
		{ID: "d1", Content: "weedmaps listing optimization with product photography"},
		{ID: "d2", Content: "email newsletter cadence for subscriber retention"},
	}
	if err := s.Seed(ctx, docs); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	snippets, err := s.Search(ctx, "weedmaps listing photography")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(snippets) != 1 || !strings.Contains(snippets[0], "weedmaps") {
		t.Fatalf("expected the weedmaps document first, got %v", snippets)
	}
}

func TestSeedSkipsEmptyContent(t *testing.T) {
	t.Parallel()

	s, err := NewSearcher()
	if err != nil {
		t.Fatalf("NewSearcher() error = %v", err)
	}
	if err := s.Seed(context.Background(), []Document{{ID: "blank", Content: "   "}}); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if s.Count() != 0 {
		t.Fatalf("expected empty collection, got count=%d", s.Count())
	}
}

func TestHashEmbeddingDeterministic(t *testing.T) {
	t.Parallel()

	embed := HashEmbedding()
	ctx := context.Background()

	a, err := embed(ctx, "cannabis marketing strategy")
	if err != nil {
		t.Fatalf("embed error = %v", err)
	}
	b, err := embed(ctx, "cannabis marketing strategy")
	if err != nil {
		t.Fatalf("embed error = %v", err)
	}
	if len(a) != hashEmbeddingDim || len(b) != hashEmbeddingDim {
		t.Fatalf("unexpected dimensions: %d, %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at index %d", i)
		}
	}

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	if norm < 0.99 || norm > 1.01 {
		t.Fatalf("embedding not normalized: norm^2 = %f", norm)
	}
}
