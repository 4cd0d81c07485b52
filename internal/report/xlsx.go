package report

import (
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/types"
)

const (
	sheetSummary      = "Summary"
	sheetParticipants = "Participants"
	sheetTrend        = "Sentiment Trend"
	sheetFeedback     = "Feedback"
)

// RenderXLSX writes the report as a workbook with one sheet per section.
func RenderXLSX(r types.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeWorkbook(f, r); err != nil {
		return nil, apperror.Export(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperror.Export(err)
	}
	return buf.Bytes(), nil
}

func writeWorkbook(f *excelize.File, r types.Report) error {
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	for _, name := range []string{sheetParticipants, sheetTrend, sheetFeedback} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summary := [][]any{
		{"Field", "Value"},
		{"Report ID", r.ID},
		{"Generated", r.Timestamp},
		{"Domain", string(r.Config.Domain)},
		{"Round", string(r.Config.RoundType)},
		{"Feedback tone", string(r.Config.FeedbackTone)},
		{"Summary", r.Summary},
		{"Topics", strings.Join(r.Topics, ", ")},
		{"Keywords", strings.Join(r.Keywords, ", ")},
		{"Communication quality", r.Assessment.CommunicationQuality},
		{"Strengths", strings.Join(r.Assessment.Strengths, "; ")},
		{"Critical improvements", strings.Join(r.Assessment.CriticalImprovements, "; ")},
		{"Recommendation", r.Assessment.Recommendation},
	}
	if err := writeRows(f, sheetSummary, summary, bold); err != nil {
		return err
	}

	participants := [][]any{{
		"ID", "Name", "Sentiment", "Tone", "Confidence", "Clarity", "Empathy", "Engagement",
		"Filler words", "Speaking pace", "Communication", "Key points", "Strengths", "Improvements",
	}}
	for _, id := range r.ParticipantIDs() {
		p := r.Participants[id]
		participants = append(participants, []any{
			p.ID, p.Name, string(p.Sentiment), p.Tone,
			p.ConfidenceScore, p.ClarityScore, p.EmpathyScore, p.EngagementScore,
			p.FillerWordsCount, string(p.SpeakingPace), p.CommunicationQuality,
			strings.Join(p.KeyPoints, "; "), strings.Join(p.Strengths, "; "), strings.Join(p.Improvements, "; "),
		})
	}
	if err := writeRows(f, sheetParticipants, participants, bold); err != nil {
		return err
	}

	trend := [][]any{{"Segment", "Sentiment", "Value", "Confidence"}}
	for _, pt := range r.SentimentTrend {
		trend = append(trend, []any{pt.Segment, string(pt.Sentiment), SentimentValue(pt.Sentiment), pt.Confidence})
	}
	if err := writeRows(f, sheetTrend, trend, bold); err != nil {
		return err
	}

	feedback := [][]any{{"Category", "Feedback"}}
	for _, k := range feedbackKeys(r.DetailedFeedback) {
		feedback = append(feedback, []any{k, r.DetailedFeedback[k]})
	}
	return writeRows(f, sheetFeedback, feedback, bold)
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}

// feedbackKeys lists the fixed categories first, then any extra keys the
// model added, sorted.
func feedbackKeys(fb types.DetailedFeedback) []string {
	keys := append([]string{}, types.FeedbackCategories...)
	var extra []string
	for k := range fb {
		known := false
		for _, c := range types.FeedbackCategories {
			if k == c {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
