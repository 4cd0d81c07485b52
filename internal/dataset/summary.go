package dataset

import (
	"strings"

	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/types"
)

type Summary struct {
	Rows             int            `json:"rows"`
	ByDomain         map[string]int `json:"by_domain"`
	ByRoundType      map[string]int `json:"by_round_type"`
	AverageWordCount float64        `json:"average_word_count"`
}

// Summarize describes a loaded batch before any model call is made.
func Summarize(items []types.BatchItem, log *logger.Logger) Summary {
	if log == nil {
		log = logger.Discard()
	}
	s := Summary{
		Rows:        len(items),
		ByDomain:    map[string]int{},
		ByRoundType: map[string]int{},
	}
	words := 0
	for _, it := range items {
		cfg := it.Config.WithDefaults()
		s.ByDomain[string(cfg.Domain)]++
		s.ByRoundType[string(cfg.RoundType)]++
		words += len(strings.Fields(it.Transcript))
	}
	if len(items) > 0 {
		s.AverageWordCount = float64(words) / float64(len(items))
	}

	log.Component("dataset.summary").WithFields(map[string]interface{}{
		"rows":      s.Rows,
		"domains":   len(s.ByDomain),
		"avg_words": s.AverageWordCount,
	}).Info("dataset summarization complete")
	return s
}
