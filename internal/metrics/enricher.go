package metrics

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/sentiment"
	"interview-insights-go/internal/types"
)

// Options carries per-invocation inputs that are not in the transcript text.
type Options struct {
	// Durations maps a speaker label or participant id to seconds spoken,
	// e.g. from speech-to-text segments. Timestamps in the transcript are
	// used when this is empty.
	Durations map[string]float64
}

// Enricher computes transcript-derived signals for each participant and
// merges them into the Analysis. The filler count is always computed
// locally; sentiment and speaking pace only fill values the model left
// empty.
type Enricher struct {
	analyzer *sentiment.Analyzer
	log      *logger.Logger
}

func NewEnricher(analyzer *sentiment.Analyzer, log *logger.Logger) *Enricher {
	if analyzer == nil {
		analyzer = sentiment.New()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Enricher{analyzer: analyzer, log: log.Component("enricher")}
}

// Enrich mutates a.Participants in place. A failing metric resets that
// field to its default and is returned; the remaining fields and
// participants are still processed.
func (e *Enricher) Enrich(a *types.Analysis, transcript string, opts Options) []error {
	if a == nil || len(a.Participants) == 0 {
		return nil
	}

	turns := ParseTurns(transcript)
	durations := opts.Durations
	if len(durations) == 0 {
		durations = Durations(turns)
	}

	var errs []error
	for _, id := range a.ParticipantIDs() {
		p := a.Participants[id]
		if p == nil {
			continue
		}

		text := TextFor(turns, id, p.Name)
		if strings.TrimSpace(text) == "" {
			text = transcript
		}
		duration := lookupDuration(durations, id, p.Name)

		if err := e.safely(id, "filler_words_count", func() error {
			p.FillerWordsCount = CountFillers(text)
			return nil
		}); err != nil {
			p.FillerWordsCount = 0
			errs = append(errs, err)
		}

		if p.Sentiment == "" {
			if err := e.safely(id, "sentiment", func() error {
				s, err := e.analyzer.Sentiment(text)
				if err != nil {
					return err
				}
				p.Sentiment = s
				return nil
			}); err != nil {
				p.Sentiment = ""
				errs = append(errs, err)
			}
		}

		if p.SpeakingPace == "" {
			if err := e.safely(id, "speaking_pace", func() error {
				pace, err := SpeakingPace(text, duration)
				if err != nil {
					return err
				}
				p.SpeakingPace = pace
				return nil
			}); err != nil {
				p.SpeakingPace = ""
				errs = append(errs, err)
			}
		}
	}
	return errs
}

// safely runs one metric computation, turning errors and panics into an
// Enrichment error.
func (e *Enricher) safely(participant, field string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			err = apperror.Enrichment(participant, field, err)
			e.log.WithFields(logrus.Fields{
				"participant": participant,
				"field":       field,
			}).WithError(err).Warn("enrichment failed; using default")
		}
	}()
	return fn()
}
