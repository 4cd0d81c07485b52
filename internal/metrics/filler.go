package metrics

import "regexp"

// fillerPatterns are matched independently and summed. "uh" is listed
// twice, so every "uh" counts double.
var fillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bum\b`),
	regexp.MustCompile(`(?i)\buh\b`),
	regexp.MustCompile(`(?i)\buh\b`),
	regexp.MustCompile(`(?i)\blike\b`),
	regexp.MustCompile(`(?i)\byou know\b`),
	regexp.MustCompile(`(?i)\bactually\b`),
	regexp.MustCompile(`(?i)\bbasically\b`),
	regexp.MustCompile(`(?i)\bwell\b`),
	regexp.MustCompile(`(?i)\bso\b`),
	regexp.MustCompile(`(?i)\bkind of\b`),
	regexp.MustCompile(`(?i)\bsort of\b`),
	regexp.MustCompile(`(?i)\bi mean\b`),
}

// CountFillers returns the total number of filler matches in text.
func CountFillers(text string) int {
	total := 0
	for _, re := range fillerPatterns {
		total += len(re.FindAllStringIndex(text, -1))
	}
	return total
}
