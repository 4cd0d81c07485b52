package metrics

import (
	"errors"
	"strings"
	"testing"

	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/types"
)

func TestCountFillers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		// "uh" is counted by two patterns: 3*2 + "I mean" + "like".
		{"Uh, uh, I mean like it's uh fine", 8},
		{"I am very excited about this opportunity, um, I mean, thank you for having me.", 2},
		{"UM. You Know. Basically, SO well.", 5},
		{"Kind of, sort of, actually.", 3},
		{"umbrella likely sofa wellness", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := CountFillers(tt.text); got != tt.want {
			t.Errorf("CountFillers(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestSpeakingPace(t *testing.T) {
	t.Parallel()

	words := func(n int) string { return strings.TrimSpace(strings.Repeat("word ", n)) }

	tests := []struct {
		name     string
		text     string
		duration float64
		want     types.SpeakingPace
	}{
		{"300 words estimated", words(300), 0, types.PaceModerate},
		{"400 words estimated", words(400), 0, types.PaceModerate},
		{"fast", words(400), 120, types.PaceFast},
		{"slow", words(200), 120, types.PaceSlow},
		{"boundary 180 is moderate", words(180), 60, types.PaceModerate},
		{"boundary 120 is moderate", words(120), 60, types.PaceModerate},
	}

	for _, tt := range tests {
		got, err := SpeakingPace(tt.text, tt.duration)
		if err != nil {
			t.Fatalf("%s: error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: SpeakingPace = %q, want %q", tt.name, got, tt.want)
		}
	}

	if _, err := SpeakingPace("a b", -1); err == nil {
		t.Errorf("negative duration: error = nil")
	}
}

func TestParseTurns(t *testing.T) {
	t.Parallel()

	transcript := strings.Join([]string{
		"Recorded on Monday",
		"[00:00 Interviewer]: Tell me about yourself.",
		"[00:10] Candidate: Um, I build APIs.",
		"I also mentor juniors.",
		"00:40 Interviewer: Great.",
		"Candidate: Thanks!",
		"see https://example.com",
	}, "\n")

	turns := ParseTurns(transcript)
	if len(turns) != 4 {
		t.Fatalf("len(turns) = %d, want 4: %+v", len(turns), turns)
	}
	if turns[0].Speaker != "Interviewer" || turns[0].Start != 0 {
		t.Errorf("turn 0 = %+v", turns[0])
	}
	if turns[1].Text != "Um, I build APIs. I also mentor juniors." || turns[1].Start != 10 {
		t.Errorf("turn 1 = %+v", turns[1])
	}
	if turns[3].Start != -1 || !strings.Contains(turns[3].Text, "example.com") {
		t.Errorf("turn 3 = %+v", turns[3])
	}

	if got := TextFor(turns, "speaker_9", "candidate"); !strings.HasPrefix(got, "Um, I build APIs.") {
		t.Errorf("TextFor(candidate) = %q", got)
	}

	// Both speakers end on a turn of unknown length.
	if d := Durations(turns); len(d) != 0 {
		t.Errorf("Durations = %v, want none", d)
	}
}

func TestDurationsAlternatingTurns(t *testing.T) {
	t.Parallel()

	hundred := strings.TrimSpace(strings.Repeat("word ", 100))
	tests := []struct {
		name      string
		lines     []string
		want      map[string]float64
		alicePace types.SpeakingPace
	}{
		{
			name: "final turn untimed",
			lines: []string{
				"[00:00] Alice: " + hundred,
				"[00:40] Bob: ok",
				"[01:00] Alice: " + hundred,
			},
			want:      map[string]float64{"bob": 20},
			alicePace: types.PaceModerate,
		},
		{
			name: "every alice turn closed",
			lines: []string{
				"[00:00] Alice: " + hundred,
				"[00:40] Bob: ok",
				"[01:00] Alice: " + hundred,
				"[02:00] Bob: Thanks.",
			},
			want:      map[string]float64{"alice": 100},
			alicePace: types.PaceModerate,
		},
		{
			name: "untimed middle turn",
			lines: []string{
				"[00:00] Alice: " + hundred,
				"Bob: ok",
				"[00:30] Alice: " + hundred,
				"[01:00] Bob: fine",
			},
			want:      map[string]float64{},
			alicePace: types.PaceModerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			transcript := strings.Join(tt.lines, "\n")
			got := Durations(ParseTurns(transcript))
			if len(got) != len(tt.want) {
				t.Fatalf("Durations = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Durations[%q] = %v, want %v", k, got[k], v)
				}
			}

			a := types.NewAnalysis(transcript)
			a.Participants["alice"] = &types.Participant{ID: "alice", Name: "Alice"}
			if errs := NewEnricher(nil, nil).Enrich(a, transcript, Options{}); len(errs) != 0 {
				t.Fatalf("Enrich errors = %v", errs)
			}
			if pace := a.Participants["alice"].SpeakingPace; pace != tt.alicePace {
				t.Errorf("alice SpeakingPace = %q, want %q", pace, tt.alicePace)
			}
		})
	}
}

func TestSpeakerKey(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"speaker_1", "Speaker 1", "  SPEAKER   1 "} {
		if got := SpeakerKey(in); got != "speaker 1" {
			t.Errorf("SpeakerKey(%q) = %q, want %q", in, got, "speaker 1")
		}
	}
}

func TestEnrichWholeTranscript(t *testing.T) {
	t.Parallel()

	transcript := "I am very excited about this opportunity, um, I mean, thank you for having me."
	a := types.NewAnalysis(transcript)
	a.Participants["speaker_1"] = &types.Participant{ID: "speaker_1", FillerWordsCount: 99}

	errs := NewEnricher(nil, nil).Enrich(a, transcript, Options{})
	if len(errs) != 0 {
		t.Fatalf("Enrich errors = %v", errs)
	}

	p := a.Participants["speaker_1"]
	if p.FillerWordsCount < 2 {
		t.Errorf("FillerWordsCount = %d, want >= 2", p.FillerWordsCount)
	}
	if p.FillerWordsCount == 99 {
		t.Errorf("model filler count was not replaced")
	}
	if p.Sentiment != types.SentimentPositive {
		t.Errorf("Sentiment = %q, want Positive", p.Sentiment)
	}
	if p.SpeakingPace != types.PaceModerate {
		t.Errorf("SpeakingPace = %q, want Moderate", p.SpeakingPace)
	}
}

func TestEnrichKeepsModelValues(t *testing.T) {
	t.Parallel()

	transcript := "Interviewer: Great, thanks.\nCandidate: Um, this was terrible, uh, awful."
	a := types.NewAnalysis(transcript)
	a.Participants["speaker_1"] = &types.Participant{ID: "speaker_1", Name: "Interviewer"}
	a.Participants["speaker_2"] = &types.Participant{
		ID:           "speaker_2",
		Name:         "Candidate",
		Sentiment:    "Confident",
		SpeakingPace: types.PaceSlow,
	}

	if errs := NewEnricher(nil, nil).Enrich(a, transcript, Options{}); len(errs) != 0 {
		t.Fatalf("Enrich errors = %v", errs)
	}

	interviewer, candidate := a.Participants["speaker_1"], a.Participants["speaker_2"]
	if interviewer.FillerWordsCount != 0 || interviewer.Sentiment != types.SentimentPositive {
		t.Errorf("interviewer = %+v", interviewer)
	}
	if candidate.FillerWordsCount != 3 {
		t.Errorf("candidate fillers = %d, want 3", candidate.FillerWordsCount)
	}
	if candidate.Sentiment != "Confident" || candidate.SpeakingPace != types.PaceSlow {
		t.Errorf("model values overridden: %+v", candidate)
	}
}

func TestEnrichUsesSuppliedDurations(t *testing.T) {
	t.Parallel()

	transcript := "Speaker A: " + strings.TrimSpace(strings.Repeat("word ", 100))
	a := types.NewAnalysis(transcript)
	a.Participants["speaker_a"] = &types.Participant{ID: "speaker_a"}

	NewEnricher(nil, nil).Enrich(a, transcript, Options{Durations: map[string]float64{"Speaker A": 20}})

	if got := a.Participants["speaker_a"].SpeakingPace; got != types.PaceFast {
		t.Fatalf("SpeakingPace = %q, want Fast (300 wpm)", got)
	}
}

func TestEnrichContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	transcript := "Alice: um \xff\xfe bad bytes\nBob: uh fine"
	a := types.NewAnalysis(transcript)
	a.Participants["alice"] = &types.Participant{ID: "alice", Name: "Alice"}
	a.Participants["bob"] = &types.Participant{ID: "bob", Name: "Bob"}

	errs := NewEnricher(nil, nil).Enrich(a, transcript, Options{})
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], apperror.ErrEnrichment) {
		t.Fatalf("error = %v, want ErrEnrichment", errs[0])
	}

	alice, bob := a.Participants["alice"], a.Participants["bob"]
	if alice.Sentiment != "" {
		t.Errorf("alice sentiment = %q, want default", alice.Sentiment)
	}
	if alice.FillerWordsCount != 1 || alice.SpeakingPace == "" {
		t.Errorf("alice other fields not computed: %+v", alice)
	}
	if bob.FillerWordsCount != 2 || bob.Sentiment == "" {
		t.Errorf("bob not enriched: %+v", bob)
	}
}
