package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"interview-insights-go/internal/types"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	return path
}

func TestLoadDetectsColumns(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, [][]any{
		{"Candidate ID", "Domain", "Round Type", "Feedback Tone", "Transcript"},
		{"c-1", "tech", "technical round", "critical", "A: hi\nB: hello"},
		{"", "", "", "", "   "},
		{"", "Sales", "", "", "A: pitch it"},
	})

	items, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2: %+v", len(items), items)
	}

	first := items[0]
	if first.ID != "c-1" || first.Transcript != "A: hi\nB: hello" {
		t.Errorf("items[0] = %+v", first)
	}
	want := types.AnalysisConfig{Domain: types.DomainTech, RoundType: types.RoundTechnical, FeedbackTone: types.ToneCritical}
	if first.Config != want {
		t.Errorf("items[0].Config = %+v, want %+v", first.Config, want)
	}

	second := items[1]
	if second.ID != "row-4" {
		t.Errorf("items[1].ID = %q, want row-4", second.ID)
	}
	if second.Config.Domain != types.DomainSales || second.Config.RoundType != "" {
		t.Errorf("items[1].Config = %+v", second.Config)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    [][]any
		wantErr string
	}{
		{name: "header only", rows: [][]any{{"Transcript"}}, wantErr: "no data rows"},
		{name: "no transcript column", rows: [][]any{{"Name", "Score"}, {"a", 1}}, wantErr: "no transcript column"},
		{name: "unknown domain", rows: [][]any{{"Transcript", "Domain"}, {"A: hi", "Astrology"}}, wantErr: `row 2: unknown domain "Astrology"`},
		{name: "all blank", rows: [][]any{{"Transcript", "ID"}, {"", "x"}}, wantErr: "no rows with a transcript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeWorkbook(t, tt.rows))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReader(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	_ = f.SetCellValue("Sheet1", "A1", "conversation")
	_ = f.SetCellValue("Sheet1", "A2", "Interviewer: Tell me about yourself.")
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	items, err := LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if len(items) != 1 || items[0].Transcript != "Interviewer: Tell me about yourself." {
		t.Fatalf("items = %+v", items)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]types.BatchItem{
		{Transcript: "one two three"},
		{Transcript: "one", Config: types.AnalysisConfig{Domain: types.DomainHR}},
	}, nil)
	if s.Rows != 2 || s.ByDomain["General"] != 1 || s.ByDomain["HR"] != 1 {
		t.Errorf("Summary = %+v", s)
	}
	if s.AverageWordCount != 2 {
		t.Errorf("AverageWordCount = %v, want 2", s.AverageWordCount)
	}
}
