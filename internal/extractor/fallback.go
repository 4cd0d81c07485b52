package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"interview-insights-go/internal/types"
)

const SummaryUnavailable = "Analysis not available"

// Anchors are tried in order; the first one that yields text wins.
var summaryAnchors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)summary`),
	regexp.MustCompile(`(?i)overall`),
}

// jsonStringValue matches the rest of a `"key": "value"` line after the key,
// which is what a truncated object looks like around the summary field.
var jsonStringValue = regexp.MustCompile(`^"?\s*:\s*"((?:[^"\\]|\\.)*)`)

// Fallback builds a well-formed Analysis from text that is not valid JSON.
// Only the summary is recovered; every collection is empty.
func Fallback(raw, transcript string) *types.Analysis {
	a := types.NewAnalysis(transcript)
	a.Summary = anchoredSummary(raw)
	return a
}

func anchoredSummary(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for _, anchor := range summaryAnchors {
		for i, line := range lines {
			loc := anchor.FindStringIndex(line)
			if loc == nil {
				continue
			}
			if p := paragraphAfter(lines, i, loc[1]); p != "" {
				return p
			}
		}
	}
	return SummaryUnavailable
}

// paragraphAfter collects the text following the anchor on line i and the
// lines after it, up to a blank line. A bare heading ("## Summary") takes
// the next paragraph instead.
func paragraphAfter(lines []string, i, offset int) string {
	if m := jsonStringValue.FindStringSubmatch(lines[i][offset:]); m != nil {
		if v, err := strconv.Unquote(`"` + m[1] + `"`); err == nil {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(m[1])
	}

	var parts []string
	if first := trimMarkup(lines[i][offset:]); first != "" {
		parts = append(parts, first)
	}

	j := i + 1
	if len(parts) == 0 {
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
	}
	for ; j < len(lines); j++ {
		line := strings.TrimSpace(lines[j])
		if line == "" || isStructural(line) {
			break
		}
		if cleaned := trimMarkup(line); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, " ")
}

func trimMarkup(s string) string {
	s = strings.TrimLeft(s, " \t:;,.-_*#=>\"'")
	s = strings.TrimRight(s, " \t,*\"'")
	return strings.TrimSpace(s)
}

// isStructural reports JSON punctuation lines, which end a paragraph when
// the response is a truncated object.
func isStructural(line string) bool {
	switch line[0] {
	case '{', '}', '[', ']', '"':
		return true
	}
	return false
}
