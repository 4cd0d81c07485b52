package extractor

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"interview-insights-go/internal/llm"
	"interview-insights-go/internal/logger"
)

const (
	DefaultKeywordCount  = 10
	DefaultKeywordPrefix = 2000
)

// KeywordExtractor asks the model for a ranked keyword list. It is
// best-effort: every failure yields an empty list.
type KeywordExtractor struct {
	gen         llm.Generator
	prefixChars int
	log         *logger.Logger
}

func NewKeywordExtractor(gen llm.Generator, prefixChars int, log *logger.Logger) *KeywordExtractor {
	if prefixChars <= 0 {
		prefixChars = DefaultKeywordPrefix
	}
	if log == nil {
		log = logger.Discard()
	}
	return &KeywordExtractor{gen: gen, prefixChars: prefixChars, log: log.Component("keywords")}
}

func (k *KeywordExtractor) Extract(ctx context.Context, text string, n int) (keywords []string) {
	keywords = []string{}
	if n <= 0 {
		n = DefaultKeywordCount
	}
	if strings.TrimSpace(text) == "" || k.gen == nil {
		return keywords
	}

	defer func() {
		if r := recover(); r != nil {
			k.log.WithField("panic", fmt.Sprint(r)).Warn("keyword extraction panicked")
			keywords = []string{}
		}
	}()

	resp, err := k.gen.Generate(ctx, BuildKeywordPrompt(truncateRunes(text, k.prefixChars), n))
	if err != nil {
		k.log.WithError(err).Warn("keyword extraction failed")
		return keywords
	}
	return SplitKeywords(resp, n)
}

func BuildKeywordPrompt(text string, n int) string {
	return fmt.Sprintf(`Extract the top %d most important keywords or key phrases from the text below.
Return them as a comma-separated list only, most important first, with no numbering or explanation.

Text:
%s`, n, text)
}

// SplitKeywords turns a comma- or line-separated reply into at most n
// trimmed, de-duplicated entries.
func SplitKeywords(resp string, n int) []string {
	out := []string{}
	if n <= 0 {
		return out
	}

	resp = strings.ReplaceAll(resp, "\r\n", "\n")
	resp = strings.ReplaceAll(resp, "\n", ",")

	seen := map[string]bool{}
	for i, part := range strings.Split(resp, ",") {
		kw := cleanKeyword(part)
		if i == 0 && strings.HasPrefix(strings.ToLower(kw), "keywords:") {
			kw = cleanKeyword(kw[len("keywords:"):])
		}
		if kw == "" || seen[strings.ToLower(kw)] {
			continue
		}
		seen[strings.ToLower(kw)] = true
		out = append(out, kw)
		if len(out) == n {
			break
		}
	}
	return out
}

func cleanKeyword(s string) string {
	s = strings.TrimSpace(s)
	// Leading list markers: "-", "*", "•", "1.", "2)".
	s = strings.TrimLeft(s, "-*• \t")
	trimmed := strings.TrimLeftFunc(s, unicode.IsDigit)
	if trimmed != s && (strings.HasPrefix(trimmed, ".") || strings.HasPrefix(trimmed, ")")) {
		s = trimmed[1:]
	}
	return strings.Trim(strings.TrimSpace(s), `"'.`+"`")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
