package types

import "sort"

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

type SpeakingPace string

const (
	PaceFast     SpeakingPace = "Fast"
	PaceModerate SpeakingPace = "Moderate"
	PaceSlow     SpeakingPace = "Slow"
)

// Feedback categories the prompt asks the model to fill.
const (
	FeedbackStructure           = "structure"
	FeedbackConciseness         = "conciseness"
	FeedbackTechnicalDepth      = "technical_depth"
	FeedbackInterpersonalSkills = "interpersonal_skills"
)

var FeedbackCategories = []string{
	FeedbackStructure,
	FeedbackConciseness,
	FeedbackTechnicalDepth,
	FeedbackInterpersonalSkills,
}

// --------------------------------------------
// Participant block
// --------------------------------------------
type Participant struct {
	ID                   string       `json:"id" yaml:"id"`
	Name                 string       `json:"name" yaml:"name"`
	Sentiment            Sentiment    `json:"sentiment" yaml:"sentiment"`
	Tone                 string       `json:"tone" yaml:"tone"`
	ConfidenceScore      float64      `json:"confidence_score" yaml:"confidence_score"`
	ClarityScore         float64      `json:"clarity_score" yaml:"clarity_score"`
	EmpathyScore         float64      `json:"empathy_score" yaml:"empathy_score"`
	EngagementScore      float64      `json:"engagement_score" yaml:"engagement_score"`
	KeyPoints            []string     `json:"key_points" yaml:"key_points"`
	Strengths            []string     `json:"strengths" yaml:"strengths"`
	Improvements         []string     `json:"improvements" yaml:"improvements"`
	FillerWordsCount     int          `json:"filler_words_count" yaml:"filler_words_count"`
	SpeakingPace         SpeakingPace `json:"speaking_pace" yaml:"speaking_pace"`
	CommunicationQuality string       `json:"communication_quality" yaml:"communication_quality"`
}

// --------------------------------------------
// Chronological sentiment point
// --------------------------------------------
type SentimentTrendPoint struct {
	Segment    string    `json:"segment" yaml:"segment"`
	Sentiment  Sentiment `json:"sentiment" yaml:"sentiment"`
	Confidence float64   `json:"confidence" yaml:"confidence"`
}

type Assessment struct {
	CommunicationQuality string   `json:"communication_quality" yaml:"communication_quality"`
	Strengths            []string `json:"strengths" yaml:"strengths"`
	CriticalImprovements []string `json:"critical_improvements" yaml:"critical_improvements"`
	Recommendation       string   `json:"recommendation" yaml:"recommendation"`
}

// DetailedFeedback maps a feedback category to free-text commentary.
type DetailedFeedback map[string]string

// Analysis is the pipeline-internal result. The parser creates it, the
// enricher mutates participants in place, the assembler reads it.
type Analysis struct {
	Summary          string                  `json:"overall_summary"`
	Participants     map[string]*Participant `json:"participants"`
	SentimentTrend   []SentimentTrendPoint   `json:"sentiment_trend"`
	Topics           []string                `json:"topics_discussed"`
	Keywords         []string                `json:"keywords"`
	Assessment       Assessment              `json:"overall_assessment"`
	DetailedFeedback DetailedFeedback        `json:"detailed_feedback"`
	RawTranscript    string                  `json:"raw_transcript"`
}

// NewAnalysis returns an Analysis with every collection present and empty.
func NewAnalysis(transcript string) *Analysis {
	return &Analysis{
		Participants:   map[string]*Participant{},
		SentimentTrend: []SentimentTrendPoint{},
		Topics:         []string{},
		Keywords:       []string{},
		Assessment: Assessment{
			Strengths:            []string{},
			CriticalImprovements: []string{},
		},
		DetailedFeedback: DetailedFeedback{},
		RawTranscript:    transcript,
	}
}

// ParticipantIDs returns participant ids in a stable order.
func (a *Analysis) ParticipantIDs() []string {
	ids := make([]string, 0, len(a.Participants))
	for id := range a.Participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// --------------------------------------------
// Canonical report handed to renderers
// --------------------------------------------
type Report struct {
	ID               string                 `json:"id" yaml:"id"`
	Timestamp        string                 `json:"timestamp" yaml:"timestamp"`
	Config           AnalysisConfig         `json:"config" yaml:"config"`
	Summary          string                 `json:"overall_summary" yaml:"overall_summary"`
	Participants     map[string]Participant `json:"participants" yaml:"participants"`
	SentimentTrend   []SentimentTrendPoint  `json:"sentiment_trend" yaml:"sentiment_trend"`
	Topics           []string               `json:"topics" yaml:"topics"`
	Keywords         []string               `json:"keywords" yaml:"keywords"`
	Assessment       Assessment             `json:"assessment" yaml:"assessment"`
	DetailedFeedback DetailedFeedback       `json:"detailed_feedback" yaml:"detailed_feedback"`
	RawTranscript    string                 `json:"raw_transcript" yaml:"raw_transcript"`
}

func (r Report) ParticipantIDs() []string {
	ids := make([]string, 0, len(r.Participants))
	for id := range r.Participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
