package actionable

import (
	"fmt"

	"interview-insights-go/internal/aggregator"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

const (
	highFillerAverage = 10.0
	lowClarityAverage = 0.5
	highNegativeShare = 0.35
	highDegradedShare = 0.2
)

// Generate turns a batch insight into coaching actions, most pressing first.
func Generate(ins aggregator.Insight) []ActionCard {
	var cards []ActionCard

	if ins.Reports > 0 && ins.DegradedShare() > highDegradedShare {
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%.0f%% of analyses fell back to partial extraction", ins.DegradedShare()*100),
			Action:  "Check the model configuration and output token limit; re-run degraded transcripts",
			Impact:  "Complete reports with per-participant scores",
		})
	}
	if share := ins.NegativeShare(); share >= highNegativeShare {
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("Negative sentiment for %.0f%% of participants", share*100),
			Action:  "Review interviewer openings and add a warm-up question",
			Impact:  "Less candidate stress and more representative answers",
		})
	}
	if ins.AverageFillerWords >= highFillerAverage {
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("High filler word usage (%.1f per participant)", ins.AverageFillerWords),
			Action:  "Practice pausing instead of filling silence; rehearse answers aloud",
			Impact:  "Clearer, more confident delivery",
		})
	}
	if clarity, ok := ins.AverageScores["clarity"]; ok && clarity < lowClarityAverage {
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("Low average clarity (%.2f)", clarity),
			Action:  "Structure answers with situation, task, action and result",
			Impact:  "Answers that are easier to follow and evaluate",
		})
	}

	if len(cards) == 0 {
		cards = append(cards, ActionCard{
			Insight: "No strong pattern detected",
			Action:  "Monitor and collect more data",
			Impact:  "Low immediate intervention",
		})
	}
	return cards
}
