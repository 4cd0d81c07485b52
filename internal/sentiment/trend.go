package sentiment

import (
	"fmt"
	"math"
	"strings"

	"interview-insights-go/internal/types"
)

const DefaultSegments = 4

var quarterLabels = []string{"First 25%", "Second 25%", "Third 25%", "Final 25%"}

// SegmentTrend splits text into n chronological, word-balanced segments and
// classifies each. Confidence is the magnitude of the segment's compound
// score. Texts shorter than n words get one segment per word.
func (a *Analyzer) SegmentTrend(text string, n int) ([]types.SentimentTrendPoint, error) {
	if n <= 0 {
		n = DefaultSegments
	}
	words := strings.Fields(text)
	out := []types.SentimentTrendPoint{}
	if len(words) == 0 {
		return out, nil
	}
	if len(words) < n {
		n = len(words)
	}

	for i := 0; i < n; i++ {
		start := i * len(words) / n
		end := (i + 1) * len(words) / n
		scores, err := a.PolarityScores(strings.Join(words[start:end], " "))
		if err != nil {
			return nil, err
		}
		out = append(out, types.SentimentTrendPoint{
			Segment:    segmentLabel(i, n),
			Sentiment:  Classify(scores.Compound),
			Confidence: math.Min(1, math.Abs(scores.Compound)),
		})
	}
	return out, nil
}

func segmentLabel(i, n int) string {
	if n == len(quarterLabels) {
		return quarterLabels[i]
	}
	return fmt.Sprintf("Segment %d of %d", i+1, n)
}
