package aggregator

import (
	"sort"
	"strings"

	"interview-insights-go/internal/types"
)

const topN = 5

// Insight summarises a batch of reports.
type Insight struct {
	Reports            int                     `json:"reports"`
	Failed             int                     `json:"failed"`
	Degraded           int                     `json:"degraded"`
	Participants       int                     `json:"participants"`
	SentimentCounts    map[types.Sentiment]int `json:"sentiment_counts"`
	AverageScores      map[string]float64      `json:"average_scores"`
	AverageFillerWords float64                 `json:"average_filler_words"`
	TopTopics          []string                `json:"top_topics"`
	TopKeywords        []string                `json:"top_keywords"`
}

// NegativeShare is the fraction of participants classified Negative.
func (i Insight) NegativeShare() float64 {
	if i.Participants == 0 {
		return 0
	}
	return float64(i.SentimentCounts[types.SentimentNegative]) / float64(i.Participants)
}

// DegradedShare is the fraction of successful analyses that used fallback parsing.
func (i Insight) DegradedShare() float64 {
	if i.Reports == 0 {
		return 0
	}
	return float64(i.Degraded) / float64(i.Reports)
}

func Aggregate(reports []types.Report, degraded, failed int) Insight {
	ins := Insight{
		Reports:         len(reports),
		Failed:          failed,
		Degraded:        degraded,
		SentimentCounts: map[types.Sentiment]int{},
		AverageScores:   map[string]float64{},
		TopTopics:       []string{},
		TopKeywords:     []string{},
	}

	sums := map[string]float64{}
	fillers := 0
	topics := map[string]int{}
	keywords := map[string]int{}
	for _, r := range reports {
		for _, p := range r.Participants {
			ins.Participants++
			if p.Sentiment != "" {
				ins.SentimentCounts[p.Sentiment]++
			}
			sums["confidence"] += p.ConfidenceScore
			sums["clarity"] += p.ClarityScore
			sums["empathy"] += p.EmpathyScore
			sums["engagement"] += p.EngagementScore
			fillers += p.FillerWordsCount
		}
		for _, t := range r.Topics {
			topics[strings.ToLower(t)]++
		}
		for _, k := range r.Keywords {
			keywords[strings.ToLower(k)]++
		}
	}

	if ins.Participants > 0 {
		for k, v := range sums {
			ins.AverageScores[k] = v / float64(ins.Participants)
		}
		ins.AverageFillerWords = float64(fillers) / float64(ins.Participants)
	}
	ins.TopTopics = top(topics, topN)
	ins.TopKeywords = top(keywords, topN)
	return ins
}

// top returns the n most frequent keys, ties broken alphabetically.
func top(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
