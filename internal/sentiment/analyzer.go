package sentiment

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jonreiter/govader"
	"interview-insights-go/internal/types"
)

// Classification thresholds on the compound score.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

var ErrInvalidText = errors.New("text is not valid UTF-8")

var (
	vaderOnce sync.Once
	vader     *govader.SentimentIntensityAnalyzer
)

// Scores holds the polarity breakdown of a text.
type Scores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"pos"`
	Neutral  float64 `json:"neu"`
	Negative float64 `json:"neg"`
}

// Analyzer scores text with the VADER lexicon. It is safe for concurrent
// use; the lexicon is loaded once per process.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func New() *Analyzer {
	vaderOnce.Do(func() {
		vader = govader.NewSentimentIntensityAnalyzer()
	})
	return &Analyzer{vader: vader}
}

// Classify maps a compound score to a sentiment label.
func Classify(compound float64) types.Sentiment {
	switch {
	case compound >= PositiveThreshold:
		return types.SentimentPositive
	case compound <= NegativeThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

// Sentiment classifies text directly.
func (a *Analyzer) Sentiment(text string) (types.Sentiment, error) {
	s, err := a.PolarityScores(text)
	if err != nil {
		return "", err
	}
	return Classify(s.Compound), nil
}

// PolarityScores scores text. Empty text scores as fully neutral.
func (a *Analyzer) PolarityScores(text string) (Scores, error) {
	if !utf8.ValidString(text) {
		return Scores{}, ErrInvalidText
	}
	if strings.TrimSpace(text) == "" {
		return Scores{Neutral: 1}, nil
	}

	s := a.vader.PolarityScores(text)
	return Scores{
		Compound: s.Compound,
		Positive: s.Positive,
		Neutral:  s.Neutral,
		Negative: s.Negative,
	}, nil
}
