package extractor

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"interview-insights-go/internal/llm"
)

func TestSplitKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp string
		n    int
		want []string
	}{
		{"comma list", "go, kubernetes ,  testing", 10, []string{"go", "kubernetes", "testing"}},
		{"truncates to n", "a, b, c, d", 2, []string{"a", "b"}},
		{"numbered lines", "1. Leadership\n2) Hiring\n- Culture", 10, []string{"Leadership", "Hiring", "Culture"}},
		{"label and dupes", "Keywords: API, api, Design.", 10, []string{"API", "Design"}},
		{"empty", "", 5, []string{}},
		{"zero n", "a, b", 0, []string{}},
	}

	for _, tt := range tests {
		if got := SplitKeywords(tt.resp, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: SplitKeywords = %#v, want %#v", tt.name, got, tt.want)
		}
	}
}

func TestKeywordExtractorTruncatesInput(t *testing.T) {
	t.Parallel()

	var seen string
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "alpha, beta, gamma", nil
	})

	long := strings.Repeat("é", 3000)
	got := NewKeywordExtractor(gen, 2000, nil).Extract(context.Background(), long, 2)

	if !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Fatalf("Extract = %v", got)
	}
	if n := strings.Count(seen, "é"); n != 2000 {
		t.Fatalf("prompt carries %d runes of text, want 2000", n)
	}
	if !utf8.ValidString(seen) {
		t.Fatalf("prompt is not valid UTF-8")
	}
	if !strings.Contains(seen, "top 2 ") {
		t.Fatalf("prompt does not ask for 2 keywords: %q", seen[:80])
	}
}

func TestKeywordExtractorNeverFails(t *testing.T) {
	t.Parallel()

	failing := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	})
	panicking := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		panic("boom")
	})

	for name, gen := range map[string]llm.Generator{"error": failing, "panic": panicking, "nil": nil} {
		got := NewKeywordExtractor(gen, 0, nil).Extract(context.Background(), "some text", 0)
		if got == nil || len(got) != 0 {
			t.Errorf("%s: Extract = %#v, want empty slice", name, got)
		}
	}
}
