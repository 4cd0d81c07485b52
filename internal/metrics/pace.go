package metrics

import (
	"fmt"
	"strings"

	"interview-insights-go/internal/types"
)

const (
	// BaselineWordsPerSecond estimates duration when none is known (~150 wpm).
	BaselineWordsPerSecond = 2.5
	FastWordsPerMinute     = 180
	SlowWordsPerMinute     = 120
)

// WordsPerMinute computes the speaking rate. A zero duration is estimated
// from the word count.
func WordsPerMinute(text string, durationSeconds float64) (float64, error) {
	if durationSeconds < 0 {
		return 0, fmt.Errorf("negative duration %v", durationSeconds)
	}
	words := len(strings.Fields(text))
	if words == 0 {
		return 0, nil
	}
	if durationSeconds == 0 {
		durationSeconds = float64(words) / BaselineWordsPerSecond
	}
	return float64(words) / durationSeconds * 60, nil
}

func ClassifyPace(wpm float64) types.SpeakingPace {
	switch {
	case wpm > FastWordsPerMinute:
		return types.PaceFast
	case wpm < SlowWordsPerMinute:
		return types.PaceSlow
	default:
		return types.PaceModerate
	}
}

func SpeakingPace(text string, durationSeconds float64) (types.SpeakingPace, error) {
	wpm, err := WordsPerMinute(text, durationSeconds)
	if err != nil {
		return "", err
	}
	return ClassifyPace(wpm), nil
}
