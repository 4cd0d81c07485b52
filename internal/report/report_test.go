package report

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
	"interview-insights-go/internal/types"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestAssembler() *Assembler {
	return NewAssembler(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "0f8fad5b-d9cb-469f-a165-70867728950e" }),
	)
}

func TestAssembleFallbackAnalysisHasNoMissingKeys(t *testing.T) {
	t.Parallel()

	r := newTestAssembler().Assemble(types.NewAnalysis("hello"), AssembleOptions{})

	if r.Timestamp != "2025-03-14 09:26:53" {
		t.Fatalf("Timestamp = %q", r.Timestamp)
	}
	if r.Config != types.DefaultAnalysisConfig() {
		t.Fatalf("Config = %+v", r.Config)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"id", "timestamp", "overall_summary", "participants", "sentiment_trend",
		"topics", "keywords", "assessment", "detailed_feedback", "raw_transcript",
	} {
		v, ok := obj[key]
		if !ok {
			t.Errorf("key %q missing", key)
			continue
		}
		if v == nil {
			t.Errorf("key %q is null", key)
		}
	}

	assessment := obj["assessment"].(map[string]any)
	for _, key := range []string{"strengths", "critical_improvements"} {
		if assessment[key] == nil {
			t.Errorf("assessment.%s is null", key)
		}
	}
	feedback := obj["detailed_feedback"].(map[string]any)
	for _, key := range types.FeedbackCategories {
		if _, ok := feedback[key]; !ok {
			t.Errorf("detailed_feedback.%s missing", key)
		}
	}
}

func TestAssembleNilAnalysis(t *testing.T) {
	t.Parallel()

	r := newTestAssembler().Assemble(nil, AssembleOptions{})
	if r.Participants == nil || r.Topics == nil || r.SentimentTrend == nil {
		t.Fatalf("nil collections in %+v", r)
	}
}

func TestAssembleNormalizesParticipants(t *testing.T) {
	t.Parallel()

	a := types.NewAnalysis("t")
	a.Participants["speaker_1"] = &types.Participant{
		ConfidenceScore:  1.7,
		ClarityScore:     math.NaN(),
		EmpathyScore:     -0.2,
		EngagementScore:  0.4,
		FillerWordsCount: -3,
	}
	a.Participants["speaker_2"] = nil

	r := newTestAssembler().Assemble(a, AssembleOptions{})

	if len(r.Participants) != 1 {
		t.Fatalf("len(Participants) = %d, want 1", len(r.Participants))
	}
	p := r.Participants["speaker_1"]
	if p.ID != "speaker_1" || p.Name != "speaker_1" {
		t.Errorf("ID/Name = %q/%q", p.ID, p.Name)
	}
	if p.ConfidenceScore != 1 || p.ClarityScore != 0 || p.EmpathyScore != 0 || p.EngagementScore != 0.4 {
		t.Errorf("scores = %+v", p)
	}
	if p.FillerWordsCount != 0 {
		t.Errorf("FillerWordsCount = %d", p.FillerWordsCount)
	}
	if p.KeyPoints == nil || p.Strengths == nil || p.Improvements == nil {
		t.Errorf("nil lists: %+v", p)
	}
}

func TestAssembleDoesNotAliasAnalysis(t *testing.T) {
	t.Parallel()

	a := types.NewAnalysis("t")
	a.Topics = append(a.Topics, "Go")
	a.Participants["p"] = &types.Participant{Name: "Ann", Strengths: []string{"calm"}}

	r := newTestAssembler().Assemble(a, AssembleOptions{})
	a.Topics[0] = "changed"
	a.Participants["p"].Strengths[0] = "changed"
	a.Participants["p"].Name = "changed"

	if r.Topics[0] != "Go" || r.Participants["p"].Strengths[0] != "calm" || r.Participants["p"].Name != "Ann" {
		t.Fatalf("report shares memory with analysis: %+v", r)
	}
}

func TestAssembleTrendOverride(t *testing.T) {
	t.Parallel()

	a := types.NewAnalysis("t")
	a.SentimentTrend = []types.SentimentTrendPoint{{Segment: "model", Sentiment: types.SentimentNegative}}

	override := []types.SentimentTrendPoint{
		{Segment: "First 25%", Sentiment: types.SentimentPositive, Confidence: 0.9},
		{Segment: "Final 25%", Sentiment: types.SentimentNeutral, Confidence: 2},
	}
	r := newTestAssembler().Assemble(a, AssembleOptions{TrendOverride: override})

	if len(r.SentimentTrend) != 2 || r.SentimentTrend[0].Segment != "First 25%" {
		t.Fatalf("SentimentTrend = %+v", r.SentimentTrend)
	}
	if r.SentimentTrend[1].Confidence != 1 {
		t.Fatalf("override confidence not clamped: %v", r.SentimentTrend[1].Confidence)
	}

	kept := newTestAssembler().Assemble(a, AssembleOptions{})
	if len(kept.SentimentTrend) != 1 || kept.SentimentTrend[0].Segment != "model" {
		t.Fatalf("model trend not kept without override: %+v", kept.SentimentTrend)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	a := types.NewAnalysis("t")
	a.Summary = "ok"
	a.Participants["p"] = &types.Participant{ConfidenceScore: 3}
	a.DetailedFeedback["extra"] = "note"

	once := newTestAssembler().Assemble(a, AssembleOptions{})
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Normalize changed an assembled report:\n%+v\n%+v", once, twice)
	}

	again := newTestAssembler().Assemble(a, AssembleOptions{})
	if !reflect.DeepEqual(once, again) {
		t.Fatalf("Assemble is not deterministic for a fixed clock")
	}
}

func TestCharts(t *testing.T) {
	t.Parallel()

	r := Normalize(types.Report{
		Participants: map[string]types.Participant{
			"b": {Name: "Bo", ConfidenceScore: 0.8, ClarityScore: 0.6},
			"a": {Name: "Al", FillerWordsCount: 4},
		},
		SentimentTrend: []types.SentimentTrendPoint{
			{Segment: "First 25%", Sentiment: types.SentimentNegative},
			{Segment: "Second 25%", Sentiment: "Confident"},
			{Segment: "Third 25%", Sentiment: "Nervous"},
			{Segment: "Final 25%", Sentiment: "Bored"},
		},
	})

	data := Charts(r)

	wantValues := []float64{-1, 0.8, -0.5, 0}
	for i, want := range wantValues {
		if got := data.SentimentTrend[i].Value; got != want {
			t.Errorf("trend[%d].Value = %v, want %v", i, got, want)
		}
	}
	if len(data.Scores) != 2 || data.Scores[0].Participant != "a" || data.Scores[0].Fillers != 4 {
		t.Errorf("Scores = %+v", data.Scores)
	}
	radar := data.Radar["b"]
	if len(radar) != 5 || radar[4].Axis != "Communication" || math.Abs(radar[4].Value-0.7) > 1e-9 {
		t.Errorf("Radar[b] = %+v", radar)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	a := types.NewAnalysis("Interviewer: hi")
	a.Summary = "Short chat"
	a.Participants["speaker_1"] = &types.Participant{Name: "Interviewer", ConfidenceScore: 0.5}
	a.SentimentTrend = []types.SentimentTrendPoint{{Segment: "First 25%", Sentiment: types.SentimentPositive}}
	r := newTestAssembler().Assemble(a, AssembleOptions{})

	t.Run("json", func(t *testing.T) {
		out, err := Render(r, FormatJSON)
		if err != nil {
			t.Fatalf("Render error = %v", err)
		}
		var back types.Report
		if err := json.Unmarshal(out, &back); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if back.Summary != "Short chat" || back.Participants["speaker_1"].Name != "Interviewer" {
			t.Fatalf("decoded = %+v", back)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := Render(r, FormatYAML)
		if err != nil {
			t.Fatalf("Render error = %v", err)
		}
		var back map[string]any
		if err := yaml.Unmarshal(out, &back); err != nil {
			t.Fatalf("yaml: %v", err)
		}
		if back["overall_summary"] != "Short chat" {
			t.Fatalf("overall_summary = %v", back["overall_summary"])
		}
	})

	t.Run("xlsx", func(t *testing.T) {
		out, err := Render(r, FormatXLSX)
		if err != nil {
			t.Fatalf("Render error = %v", err)
		}
		f, err := excelize.OpenReader(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("open workbook: %v", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		want := []string{sheetSummary, sheetParticipants, sheetTrend, sheetFeedback}
		if !reflect.DeepEqual(sheets, want) {
			t.Fatalf("sheets = %v, want %v", sheets, want)
		}
		name, err := f.GetCellValue(sheetParticipants, "B2")
		if err != nil || name != "Interviewer" {
			t.Fatalf("Participants!B2 = %q, %v", name, err)
		}
		summary, _ := f.GetCellValue(sheetSummary, "B7")
		if summary != "Short chat" {
			t.Fatalf("Summary!B7 = %q", summary)
		}
		rows, _ := f.GetRows(sheetFeedback)
		if len(rows) != 1+len(types.FeedbackCategories) {
			t.Fatalf("feedback rows = %d", len(rows))
		}
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yml": FormatYAML, "xlsx": FormatXLSX} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Errorf("ParseFormat(pdf) error = nil")
	}
}

func TestArtifactName(t *testing.T) {
	t.Parallel()

	r := types.Report{ID: "0f8fad5b-d9cb-469f-a165-70867728950e"}
	if got, want := ArtifactName(r, FormatXLSX, fixedNow), "interview_report_20250314_092653_0f8fad5b.xlsx"; got != want {
		t.Fatalf("ArtifactName = %q, want %q", got, want)
	}

	a := ArtifactName(types.Report{}, FormatJSON, fixedNow)
	b := ArtifactName(types.Report{}, FormatJSON, fixedNow)
	if a == b || !strings.HasPrefix(a, "interview_report_20250314_092653_") {
		t.Fatalf("names without id = %q, %q", a, b)
	}
}

func TestSchemaListsReportFields(t *testing.T) {
	t.Parallel()

	raw, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON error = %v", err)
	}
	for _, field := range []string{`"overall_summary"`, `"participants"`, `"sentiment_trend"`, `"detailed_feedback"`, `"timestamp"`} {
		if !bytes.Contains(raw, []byte(field)) {
			t.Errorf("schema missing %s", field)
		}
	}
}
