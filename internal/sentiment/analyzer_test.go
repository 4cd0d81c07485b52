package sentiment

import (
	"errors"
	"strings"
	"testing"

	"interview-insights-go/internal/types"
)

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		compound float64
		want     types.Sentiment
	}{
		{0.05, types.SentimentPositive},
		{0.9, types.SentimentPositive},
		{-0.05, types.SentimentNegative},
		{-1, types.SentimentNegative},
		{0, types.SentimentNeutral},
		{0.049, types.SentimentNeutral},
		{-0.049, types.SentimentNeutral},
	}

	for _, tt := range tests {
		if got := Classify(tt.compound); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.compound, got, tt.want)
		}
	}
}

func TestSentiment(t *testing.T) {
	t.Parallel()

	a := New()
	tests := []struct {
		text string
		want types.Sentiment
	}{
		{"I am very excited about this opportunity, um, I mean, thank you for having me.", types.SentimentPositive},
		{"This was a terrible and frustrating experience.", types.SentimentNegative},
		{"The result was not good.", types.SentimentNegative},
		{"The meeting starts at noon on Tuesday.", types.SentimentNeutral},
		{"Her answers were thoughtful and impressive.", types.SentimentPositive},
		{"He sounded hesitant.", types.SentimentNegative},
		{"", types.SentimentNeutral},
	}

	for _, tt := range tests {
		got, err := a.Sentiment(tt.text)
		if err != nil {
			t.Fatalf("Sentiment(%q) error = %v", tt.text, err)
		}
		if got != tt.want {
			t.Errorf("Sentiment(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestPolarityScoresModifiers(t *testing.T) {
	t.Parallel()

	a := New()
	score := func(text string) float64 {
		t.Helper()
		s, err := a.PolarityScores(text)
		if err != nil {
			t.Fatalf("PolarityScores(%q) error = %v", text, err)
		}
		return s.Compound
	}

	base := score("The answer was good.")
	if boosted := score("The answer was very good."); boosted <= base {
		t.Errorf("booster: %v <= %v", boosted, base)
	}
	if damped := score("The answer was slightly good."); damped >= base {
		t.Errorf("dampener: %v >= %v", damped, base)
	}
	if shouted := score("The answer was GOOD."); shouted <= base {
		t.Errorf("caps: %v <= %v", shouted, base)
	}
	if excited := score("The answer was good!!"); excited <= base {
		t.Errorf("exclamation: %v <= %v", excited, base)
	}
	if but := score("The intro was good but the ending was terrible."); but >= 0 {
		t.Errorf("but clause: %v >= 0", but)
	}
	if kindOf := score("It was kind of slow."); kindOf != 0 {
		t.Errorf("kind of: %v, want 0", kindOf)
	}
}

func TestPolarityScoresProportionsSumToOne(t *testing.T) {
	t.Parallel()

	s, err := New().PolarityScores("Great work, but the demo had a problem.")
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	sum := s.Positive + s.Neutral + s.Negative
	if sum < 0.99 || sum > 1.01 {
		t.Fatalf("pos+neu+neg = %v, want ~1", sum)
	}
	if s.Compound < -1 || s.Compound > 1 {
		t.Fatalf("Compound = %v out of range", s.Compound)
	}
}

func TestPolarityScoresRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := New().PolarityScores("good \xff\xfe")
	if !errors.Is(err, ErrInvalidText) {
		t.Fatalf("error = %v, want ErrInvalidText", err)
	}
}

func TestSegmentTrend(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"I was nervous and worried at the start.",
		"Then things were okay and we covered the schedule.",
		"The project discussion was great and exciting.",
		"I am thankful and happy with how it ended.",
	}, " ")

	trend, err := New().SegmentTrend(text, 0)
	if err != nil {
		t.Fatalf("SegmentTrend error = %v", err)
	}
	if len(trend) != 4 {
		t.Fatalf("len = %d, want 4", len(trend))
	}
	if trend[0].Segment != "First 25%" || trend[3].Segment != "Final 25%" {
		t.Errorf("labels = %q .. %q", trend[0].Segment, trend[3].Segment)
	}
	if trend[0].Sentiment != types.SentimentNegative {
		t.Errorf("first segment = %q, want Negative", trend[0].Sentiment)
	}
	if trend[3].Sentiment != types.SentimentPositive {
		t.Errorf("final segment = %q, want Positive", trend[3].Sentiment)
	}
	for _, p := range trend {
		if p.Confidence < 0 || p.Confidence > 1 {
			t.Errorf("confidence %v out of range", p.Confidence)
		}
	}

	short, err := New().SegmentTrend("good day", 4)
	if err != nil || len(short) != 2 {
		t.Fatalf("short trend = %v, %v; want 2 points", short, err)
	}
}
