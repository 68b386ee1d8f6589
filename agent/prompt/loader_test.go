package prompt

import (
	"strings"
	"testing"
)

func TestStrategistPrompt(t *testing.T) {
	t.Parallel()

	p := Strategist()
	if p == "" {
		t.Fatal("strategist prompt is empty")
	}
	if strings.HasSuffix(p, "\n") {
		t.Fatal("prompt must be trimmed")
	}
	if !strings.Contains(p, "cannabis marketing strategist") {
		t.Fatalf("unexpected prompt content: %q", p)
	}
}

func TestBaselineQuestions(t *testing.T) {
	t.Parallel()

	questions, err := BaselineQuestions()
	if err != nil {
		t.Fatalf("BaselineQuestions() error = %v", err)
	}
	if len(questions) == 0 {
		t.Fatal("no baseline questions embedded")
	}
	seen := make(map[string]bool)
	for _, q := range questions {
		if q.ID == "" || q.Question == "" {
			t.Fatalf("incomplete question: %+v", q)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if len(q.Keywords) == 0 {
			t.Fatalf("question %s has no keywords", q.ID)
		}
	}
}
