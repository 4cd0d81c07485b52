package report

import "interview-insights-go/internal/types"

// sentimentValues places sentiment labels on a -1..1 axis for plotting.
var sentimentValues = map[types.Sentiment]float64{
	types.SentimentPositive: 1,
	types.SentimentNeutral:  0,
	types.SentimentNegative: -1,
	"Confident":             0.8,
	"Nervous":               -0.5,
}

func SentimentValue(s types.Sentiment) float64 {
	return sentimentValues[s]
}

type TrendPoint struct {
	Index      int             `json:"index"`
	Segment    string          `json:"segment"`
	Sentiment  types.Sentiment `json:"sentiment"`
	Value      float64         `json:"value"`
	Confidence float64         `json:"confidence"`
}

type ScoreBar struct {
	Participant string  `json:"participant"`
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	Clarity     float64 `json:"clarity"`
	Empathy     float64 `json:"empathy"`
	Engagement  float64 `json:"engagement"`
	Fillers     int     `json:"filler_words"`
}

type RadarAxis struct {
	Axis  string  `json:"axis"`
	Value float64 `json:"value"`
}

// ChartData is everything the chart renderers plot, derived from a Report.
type ChartData struct {
	SentimentTrend []TrendPoint           `json:"sentiment_trend"`
	Scores         []ScoreBar             `json:"scores"`
	Radar          map[string][]RadarAxis `json:"radar"`
}

func Charts(r types.Report) ChartData {
	data := ChartData{
		SentimentTrend: make([]TrendPoint, 0, len(r.SentimentTrend)),
		Scores:         make([]ScoreBar, 0, len(r.Participants)),
		Radar:          make(map[string][]RadarAxis, len(r.Participants)),
	}

	for i, pt := range r.SentimentTrend {
		data.SentimentTrend = append(data.SentimentTrend, TrendPoint{
			Index:      i,
			Segment:    pt.Segment,
			Sentiment:  pt.Sentiment,
			Value:      SentimentValue(pt.Sentiment),
			Confidence: pt.Confidence,
		})
	}

	for _, id := range r.ParticipantIDs() {
		p := r.Participants[id]
		data.Scores = append(data.Scores, ScoreBar{
			Participant: id,
			Name:        p.Name,
			Confidence:  p.ConfidenceScore,
			Clarity:     p.ClarityScore,
			Empathy:     p.EmpathyScore,
			Engagement:  p.EngagementScore,
			Fillers:     p.FillerWordsCount,
		})
		data.Radar[id] = Radar(p)
	}
	return data
}

// Radar returns the five radar axes for one participant.
func Radar(p types.Participant) []RadarAxis {
	return []RadarAxis{
		{Axis: "Confidence", Value: p.ConfidenceScore},
		{Axis: "Clarity", Value: p.ClarityScore},
		{Axis: "Empathy", Value: p.EmpathyScore},
		{Axis: "Engagement", Value: p.EngagementScore},
		{Axis: "Communication", Value: (p.ConfidenceScore + p.ClarityScore) / 2},
	}
}
