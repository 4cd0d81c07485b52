package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"interview-insights-go/internal/types"
)

// columns holds detected header positions; -1 means absent.
type columns struct {
	transcript int
	id         int
	domain     int
	round      int
	tone       int
}

// Load reads batch items from the first sheet of an xlsx workbook.
func Load(path string) ([]types.BatchItem, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return load(f)
}

// LoadReader is Load for an uploaded workbook.
func LoadReader(r io.Reader) ([]types.BatchItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return load(f)
}

func load(f *excelize.File) ([]types.BatchItem, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	cols := detectColumns(rows[0])
	if cols.transcript == -1 {
		return nil, fmt.Errorf("no transcript column in header %q", rows[0])
	}

	var out []types.BatchItem
	for i, r := range rows {
		if i == 0 {
			continue
		}
		item := types.BatchItem{
			ID:         cell(r, cols.id),
			Transcript: cell(r, cols.transcript),
		}
		// skip blank rows quietly
		if strings.TrimSpace(item.Transcript) == "" {
			continue
		}

		line := i + 1
		if v := cell(r, cols.domain); v != "" {
			d, ok := matchEnum(types.Domains, v)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown domain %q", line, v)
			}
			item.Config.Domain = d
		}
		if v := cell(r, cols.round); v != "" {
			rt, ok := matchEnum(types.RoundTypes, v)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown round type %q", line, v)
			}
			item.Config.RoundType = rt
		}
		if v := cell(r, cols.tone); v != "" {
			t, ok := matchEnum(types.FeedbackTones, v)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown feedback tone %q", line, v)
			}
			item.Config.FeedbackTone = t
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("row-%d", line)
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no rows with a transcript")
	}
	return out, nil
}

func detectColumns(header []string) columns {
	cols := columns{transcript: -1, id: -1, domain: -1, round: -1, tone: -1}
	set := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "transcript") || strings.Contains(l, "conversation") || l == "text":
			set(&cols.transcript, i)
		case strings.Contains(l, "domain"):
			set(&cols.domain, i)
		case strings.Contains(l, "round"):
			set(&cols.round, i)
		case strings.Contains(l, "tone"):
			set(&cols.tone, i)
		case l == "id" || strings.HasSuffix(l, " id") || strings.HasSuffix(l, "_id"):
			set(&cols.id, i)
		}
	}
	return cols
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

func matchEnum[T ~string](values []T, s string) (T, bool) {
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
