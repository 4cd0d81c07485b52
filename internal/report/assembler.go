package report

import (
	"math"
	"time"

	"github.com/google/uuid"
	"interview-insights-go/internal/types"
)

// TimestampLayout is the format of Report.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Assembler turns an Analysis into the canonical Report. It never mutates
// its input and never fails.
type Assembler struct {
	now   func() time.Time
	newID func() string
}

type Option func(*Assembler)

func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(a *Assembler) { a.newID = newID }
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssembleOptions are per-report inputs that are not part of the Analysis.
type AssembleOptions struct {
	Config types.AnalysisConfig
	// TrendOverride, when non-nil, replaces the model-derived trend.
	TrendOverride []types.SentimentTrendPoint
}

func (as *Assembler) Assemble(a *types.Analysis, opts AssembleOptions) types.Report {
	if a == nil {
		a = types.NewAnalysis("")
	}

	r := types.Report{
		ID:               as.newID(),
		Timestamp:        as.now().Format(TimestampLayout),
		Config:           opts.Config.WithDefaults(),
		Summary:          a.Summary,
		Participants:     make(map[string]types.Participant, len(a.Participants)),
		SentimentTrend:   a.SentimentTrend,
		Topics:           a.Topics,
		Keywords:         a.Keywords,
		Assessment:       a.Assessment,
		DetailedFeedback: a.DetailedFeedback,
		RawTranscript:    a.RawTranscript,
	}
	for id, p := range a.Participants {
		if p == nil {
			continue
		}
		cp := *p
		if cp.ID == "" {
			cp.ID = id
		}
		r.Participants[id] = cp
	}
	if opts.TrendOverride != nil {
		r.SentimentTrend = opts.TrendOverride
	}
	return Normalize(r)
}

// Normalize returns a deep copy of r with every absent field set to its
// default. Applying it twice gives the same result as applying it once.
func Normalize(r types.Report) types.Report {
	out := r
	out.Config = r.Config.WithDefaults()

	out.Participants = make(map[string]types.Participant, len(r.Participants))
	for id, p := range r.Participants {
		out.Participants[id] = normalizeParticipant(id, p)
	}

	out.SentimentTrend = make([]types.SentimentTrendPoint, 0, len(r.SentimentTrend))
	for _, pt := range r.SentimentTrend {
		pt.Confidence = clampScore(pt.Confidence)
		out.SentimentTrend = append(out.SentimentTrend, pt)
	}

	out.Topics = copyStrings(r.Topics)
	out.Keywords = copyStrings(r.Keywords)
	out.Assessment.Strengths = copyStrings(r.Assessment.Strengths)
	out.Assessment.CriticalImprovements = copyStrings(r.Assessment.CriticalImprovements)

	out.DetailedFeedback = make(types.DetailedFeedback, len(r.DetailedFeedback)+len(types.FeedbackCategories))
	for k, v := range r.DetailedFeedback {
		out.DetailedFeedback[k] = v
	}
	for _, k := range types.FeedbackCategories {
		if _, ok := out.DetailedFeedback[k]; !ok {
			out.DetailedFeedback[k] = ""
		}
	}
	return out
}

func normalizeParticipant(id string, p types.Participant) types.Participant {
	if p.ID == "" {
		p.ID = id
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	p.ConfidenceScore = clampScore(p.ConfidenceScore)
	p.ClarityScore = clampScore(p.ClarityScore)
	p.EmpathyScore = clampScore(p.EmpathyScore)
	p.EngagementScore = clampScore(p.EngagementScore)
	if p.FillerWordsCount < 0 {
		p.FillerWordsCount = 0
	}
	p.KeyPoints = copyStrings(p.KeyPoints)
	p.Strengths = copyStrings(p.Strengths)
	p.Improvements = copyStrings(p.Improvements)
	return p
}

func clampScore(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
